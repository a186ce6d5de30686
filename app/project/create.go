package project

import (
	"bitwise74/task-api/app/reply"
	"bitwise74/task-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

type projectBody struct {
	Name string `json:"name" binding:"required"`
}

// ProjectCreate stores a new project owned by the caller and returns it
func ProjectCreate(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	var data projectBody
	if !reply.Bind(c, &data) {
		return
	}

	project, err := d.Projects.Create(c.Request.Context(), data.Name, userID)
	if err != nil {
		reply.StoreError(c, err, "Project not found", "Failed to create project")
		return
	}

	c.JSON(http.StatusOK, project)
}
