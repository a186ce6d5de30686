package task

import (
	"bitwise74/task-api/app/reply"
	"bitwise74/task-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TaskList returns the tasks of the project given in the proyecto query
// parameter
func TaskList(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	projectID := c.Query("proyecto")
	if projectID == "" {
		reply.Error(c, http.StatusNotFound, "Project not found")
		return
	}

	tasks, err := d.Tasks.ListByProject(c.Request.Context(), projectID, userID)
	if err != nil {
		reply.StoreError(c, err, "Project not found", "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tareas": tasks,
	})
}
