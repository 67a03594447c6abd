package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError 统一错误响应结构
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"` // 仅非生产环境返回
}

// Error 返回错误响应
func Error(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, APIError{
		StatusCode: code,
		Message:    message,
	})
}

// ErrorWithDetails 返回带调试信息的错误响应
func ErrorWithDetails(c *gin.Context, code int, message, details string) {
	c.AbortWithStatusJSON(code, APIError{
		StatusCode: code,
		Message:    message,
		Details:    details,
	})
}

// NotFound 返回404错误
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "资源不存在"
	}
	Error(c, http.StatusNotFound, message)
}
