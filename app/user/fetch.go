package user

import (
	"bitwise74/task-api/app/reply"
	"bitwise74/task-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserFetch returns the authenticated user without the password hash
func UserFetch(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	user, err := d.Users.FindByID(c.Request.Context(), userID)
	if err != nil {
		reply.StoreError(c, err, "User not found", "Failed to fetch authenticated user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"usuario": user,
	})
}
