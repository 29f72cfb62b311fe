package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is the one failure type this layer surfaces. Status is 401 for
// absent/invalid/expired/mismatched tokens or sessions and 403 for a
// deactivated account or organization. Anything else that reaches the
// translator renders as a generic 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

// Respond is the single translator from errors to JSON responses used by
// every protected endpoint. Internal failures never leak detail to the
// response body.
func Respond(c *gin.Context, err error) {
	var ae *Error
	if errors.As(err, &ae) {
		c.AbortWithStatusJSON(ae.Status, gin.H{"error": ae.Message})
		return
	}
	slog.Error("auth internal error", "path", c.FullPath(), "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
