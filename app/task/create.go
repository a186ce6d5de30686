package task

import (
	"bitwise74/task-api/app/reply"
	"bitwise74/task-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

type createBody struct {
	Name     string `json:"name" binding:"required"`
	Proyecto string `json:"proyecto" binding:"required"`
}

// TaskCreate adds a task to one of the caller's projects
func TaskCreate(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	var data createBody
	if !reply.Bind(c, &data) {
		return
	}

	task, err := d.Tasks.Create(c.Request.Context(), data.Name, data.Proyecto, userID)
	if err != nil {
		reply.StoreError(c, err, "Project not found", "Failed to create task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tarea": task,
	})
}
