package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/charlesng35/collabhub/pkg/errors"
)

// Response defines the base API payload.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo holds error details to send to clients.
type ErrorInfo struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Errors  []appErrors.FieldError `json:"errors,omitempty"`
}

// Message is the payload for endpoints that only confirm an action.
type Message struct {
	Message string `json:"message"`
}

// Success writes a JSON success response.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// Confirm writes a 200 response carrying only a human readable message.
func Confirm(c *gin.Context, message string) {
	Success(c, http.StatusOK, Message{Message: message})
}

// Error writes a JSON error response derived from an AppError. Internal
// details never leave the process.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	info := &ErrorInfo{
		Code:    appErr.Code,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	}
	if appErr.IsServerError() {
		_ = c.Error(err)
		info = &ErrorInfo{
			Code:    appErrors.ErrInternalServer.Code,
			Message: appErrors.ErrInternalServer.Message,
		}
	}

	c.JSON(status, Response{
		Success: false,
		Error:   info,
	})
}
