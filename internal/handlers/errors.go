package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/justsurfingit/jobly-api/internal/apperr"
	"github.com/justsurfingit/jobly-api/internal/dtos"
)

// ErrorHandler renders the last error attached to the request as
// {"error": {"message", "status"}}. Errors without a status become a logged 500.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		status := apperr.StatusOf(last.Err)
		message := last.Err.Error()
		if status == http.StatusInternalServerError {
			log.Error("request failed",
				zap.Error(last.Err),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(requestIDKey)),
			)
			message = http.StatusText(http.StatusInternalServerError)
		}
		c.AbortWithStatusJSON(status, errorBody(status, message))
	}
}

func errorBody(status int, message string) gin.H {
	return gin.H{"error": gin.H{"message": message, "status": status}}
}

func notFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, errorBody(http.StatusNotFound, http.StatusText(http.StatusNotFound)))
}

// bindJSON decodes and validates the request body, recording a bad request on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			_ = c.Error(apperr.BadRequest("Request body is empty"))
			return false
		}
		_ = c.Error(apperr.BadRequest(dtos.Describe(err)))
		return false
	}
	return true
}

// bindQuery rejects query keys outside allowed before binding the rest into dst.
func bindQuery(c *gin.Context, dst any, allowed []string) bool {
	if unknown := dtos.UnknownKeys(c.Request.URL.Query(), allowed); len(unknown) > 0 {
		_ = c.Error(apperr.BadRequest("Unknown filter: " + strings.Join(unknown, ", ")))
		return false
	}
	if err := c.ShouldBindQuery(dst); err != nil {
		_ = c.Error(apperr.BadRequest(dtos.Describe(err)))
		return false
	}
	return true
}
