package task

import (
	"bitwise74/task-api/app/reply"
	"bitwise74/task-api/internal"
	"bitwise74/task-api/internal/store"
	"net/http"

	"github.com/gin-gonic/gin"
)

type updateBody struct {
	Name     *string `json:"name"`
	Estado   *bool   `json:"estado"`
	Proyecto string  `json:"proyecto"`
}

// TaskUpdate renames a task and/or toggles its completion state
func TaskUpdate(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)
	taskID := c.Param("id")

	var data updateBody
	if !reply.Bind(c, &data) {
		return
	}

	if !inProject(c, d, taskID, data.Proyecto, userID) {
		return
	}

	task, err := d.Tasks.Update(c.Request.Context(), taskID, store.TaskUpdate{
		Name:   data.Name,
		Estado: data.Estado,
	}, userID)
	if err != nil {
		reply.StoreError(c, err, "Task not found", "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tareaActualizada": task,
	})
}

// inProject rejects requests naming a project the task doesn't belong to.
// Ownership is checked first so non-owners never learn a task exists. An empty
// projectID skips the check.
func inProject(c *gin.Context, d *internal.Deps, taskID, projectID, userID string) bool {
	if projectID == "" {
		return true
	}

	task, _, err := d.Tasks.Owned(c.Request.Context(), taskID, userID)
	if err != nil {
		reply.StoreError(c, err, "Task not found", "Failed to fetch task")
		return false
	}

	if task.Proyecto != projectID {
		reply.Error(c, http.StatusNotFound, "Task not found")
		return false
	}

	return true
}
