package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"miniblog/internal/service"
	"miniblog/pkg/response"
	"miniblog/pkg/validator"
)

// bindJSON parses and shape-validates the request body. Malformed bodies get
// a 400, field-level validation failures a 422. Returns false when the
// request has already been answered.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if validator.IsValidationError(err) {
			response.ValidationErrors(c, validator.Messages(err))
		} else {
			response.Message(c, http.StatusBadRequest, "malformed request body")
		}
		return false
	}
	return true
}

// parseID reads a numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Message(c, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return uint(id), true
}

// respondError maps a service error to a response, handling creation
// cooldowns specially so the Retry-After header is set.
func respondError(c *gin.Context, err error) {
	var rateLimitErr *service.RateLimitError
	if errors.As(err, &rateLimitErr) {
		c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
		response.Message(c, http.StatusTooManyRequests, rateLimitErr.Message)
		return
	}
	response.Error(c, err)
}
