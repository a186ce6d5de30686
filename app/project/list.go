package project

import (
	"bitwise74/task-api/app/reply"
	"bitwise74/task-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ProjectList(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	projects, err := d.Projects.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		reply.Internal(c, "Failed to list projects", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proyectos": projects,
	})
}
