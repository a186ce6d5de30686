package user

import (
	"bitwise74/task-api/app/reply"
	"bitwise74/task-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

type registerBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserRegister creates an account and logs it in right away
func UserRegister(c *gin.Context, d *internal.Deps) {
	var data registerBody
	if !reply.Bind(c, &data) {
		return
	}

	user, err := d.Users.Register(c.Request.Context(), data.Name, data.Email, data.Password)
	if err != nil {
		reply.StoreError(c, err, "User not found", "Failed to create user")
		return
	}

	token, err := d.Tokens.Issue(user.ID)
	if err != nil {
		reply.Internal(c, "Failed to generate JWT auth token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}
