// Package root holds endpoints that aren't tied to any resource
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat answers HEAD requests so load balancers can tell the server is up
func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}
