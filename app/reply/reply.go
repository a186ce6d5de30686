// Package reply writes the JSON error bodies shared by every handler
package reply

import (
	"bitwise74/task-api/internal/store"
	"bitwise74/task-api/pkg/middleware"
	"bitwise74/task-api/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"error":     msg,
		"requestID": c.GetString("requestID"),
	})
}

// Internal answers with a generic 500 and logs the real cause
func Internal(c *gin.Context, logMsg string, err error) {
	Error(c, http.StatusInternalServerError, "Internal server error")

	zap.L().Error(logMsg, zap.Error(err), zap.String("requestID", c.GetString("requestID")))
}

func Fields(c *gin.Context, fields []validators.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"errors":    fields,
		"requestID": c.GetString("requestID"),
	})
}

// Bind decodes and validates a JSON body into dst. On failure the response
// has already been written.
func Bind(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	if middleware.IsBodyTooLarge(err) {
		Error(c, http.StatusRequestEntityTooLarge, "Request body size exceeds limit")
		return false
	}

	zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
	Fields(c, validators.Fields(err))
	return false
}

// StoreError maps an error returned by the store package to a response.
// notFound is the message used when the requested record doesn't exist.
func StoreError(c *gin.Context, err error, notFound, logMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		Error(c, http.StatusNotFound, notFound)
	case errors.Is(err, store.ErrProjectNotFound):
		Error(c, http.StatusNotFound, "Project not found")
	case errors.Is(err, store.ErrForbidden):
		// Kept as 401 for existing clients
		Error(c, http.StatusUnauthorized, "Unauthorized user")
	case errors.Is(err, store.ErrEmptyName):
		Fields(c, []validators.FieldError{{Field: "name", Msg: "name is required"}})
	case errors.Is(err, store.ErrDuplicateEmail):
		Error(c, http.StatusBadRequest, "User already exists")
	default:
		Internal(c, logMsg, err)
	}
}
