package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func OK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

func OKMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: true, Message: message})
}

// Fail renders a domain error with its mapped status, or a generic 500 for
// anything unexpected.
func Fail(c *gin.Context, err error) {
	var derr *DomainError
	if errors.As(err, &derr) {
		c.JSON(derr.Status, Response{Success: false, Message: derr.Message, Code: derr.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "internal server error"})
}

// FailBadRequest is for malformed request bodies caught by binding.
func FailBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "Invalid input: " + err.Error(),
		Code:    CodeValidation,
	})
}
