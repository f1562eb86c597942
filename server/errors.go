package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/docrag/core"
)

// statusFor maps domain sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound),
		errors.Is(err, core.ErrAssetNotFound),
		errors.Is(err, core.ErrThreadNotFound),
		errors.Is(err, core.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrDuplicateFileName):
		return http.StatusConflict
	case errors.Is(err, core.ErrInvalidPath),
		errors.Is(err, core.ErrPathTraversal),
		errors.Is(err, core.ErrNotAFile),
		errors.Is(err, core.ErrUnsupportedFormat),
		errors.Is(err, core.ErrEmptyMessage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the JSON error payload for err.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs
		detail = "internal server error"
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}
