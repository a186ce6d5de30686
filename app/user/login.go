package user

import (
	"bitwise74/task-api/app/reply"
	"bitwise74/task-api/internal"
	"bitwise74/task-api/internal/store"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func UserLogin(c *gin.Context, d *internal.Deps) {
	var data loginBody
	if !reply.Bind(c, &data) {
		return
	}

	user, err := d.Users.Authenticate(c.Request.Context(), data.Email, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			reply.Error(c, http.StatusBadRequest, "User does not exist")
		case errors.Is(err, store.ErrWrongPassword):
			reply.Error(c, http.StatusBadRequest, "Incorrect password")
		default:
			reply.Internal(c, "Failed to authenticate user", err)
		}
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
