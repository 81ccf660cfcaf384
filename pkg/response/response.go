package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"miniblog/pkg/apperror"
)

// Message writes a `{"msg": ...}` body, the canonical success/error envelope.
func Message(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"msg": msg})
}

// Error maps err onto an HTTP status and writes a `{"msg": ...}` body.
// Internal errors are logged server-side and surfaced as an opaque message.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		log.Printf("[internal error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(code, gin.H{"msg": apperror.ErrInternal.Error()})
		return
	}

	c.JSON(code, gin.H{"msg": err.Error()})
}

// ValidationErrors writes a 422 with per-field messages under "errors".
func ValidationErrors(c *gin.Context, messages []string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": messages})
}
