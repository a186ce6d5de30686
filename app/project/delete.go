package project

import (
	"bitwise74/task-api/app/reply"
	"bitwise74/task-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProjectDelete removes a project and every task inside it
func ProjectDelete(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)
	projectID := c.Param("id")

	if err := d.Projects.Delete(c.Request.Context(), projectID, userID); err != nil {
		reply.StoreError(c, err, "Project not found", "Failed to delete project")
		return
	}

	zap.L().Debug("Project deleted",
		zap.String("projectID", projectID),
		zap.String("userID", userID),
		zap.String("requestID", c.GetString("requestID")),
	)

	c.JSON(http.StatusOK, gin.H{
		"msg": "Project deleted",
	})
}
