package task

import (
	"bitwise74/task-api/app/reply"
	"bitwise74/task-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

func TaskDelete(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)
	taskID := c.Param("id")

	if !inProject(c, d, taskID, c.Query("proyecto"), userID) {
		return
	}

	project, err := d.Tasks.Delete(c.Request.Context(), taskID, userID)
	if err != nil {
		reply.StoreError(c, err, "Task not found", "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg": "Task deleted from project: " + project.Name,
	})
}
