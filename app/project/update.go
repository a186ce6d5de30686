package project

import (
	"bitwise74/task-api/app/reply"
	"bitwise74/task-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProjectUpdate renames a project. Only the creator may do so.
func ProjectUpdate(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	var data projectBody
	if !reply.Bind(c, &data) {
		return
	}

	project, err := d.Projects.Rename(c.Request.Context(), c.Param("id"), data.Name, userID)
	if err != nil {
		reply.StoreError(c, err, "Project not found", "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proyecto": project,
	})
}
