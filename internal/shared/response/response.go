package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// TimestampLayout matches JavaScript's Date.toISOString().
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// ErrorBody is the minimal failure payload: {"error": "..."}.
type ErrorBody struct {
	Error string `json:"error"`
}

// Timestamp formats t in UTC with millisecond precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// JSON writes payload as is. Function endpoints return bare objects, not envelopes.
func JSON(c *gin.Context, statusCode int, payload interface{}) {
	c.JSON(statusCode, payload)
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}
