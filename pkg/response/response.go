package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every non-2xx answer.
type ErrorBody struct {
	Message   string            `json:"message"`
	RequestID string            `json:"request_id,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

// MessageBody is returned by endpoints that have nothing but a status to report.
type MessageBody struct {
	Message string `json:"message"`
}

func JSON(c *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, data)
}

func Message(c *gin.Context, status int, message string) {
	JSON(c, status, MessageBody{Message: message})
}

// Error aborts the chain and writes message with the request id.
func Error(c *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, ErrorBody{Message: message, RequestID: c.GetString("request_id")})
}

// Validation aborts with 422 and the per-field details.
func Validation(c *gin.Context, details map[string]string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorBody{
		Message:   "invalid payload",
		RequestID: c.GetString("request_id"),
		Details:   details,
	})
}
