package handler

import (
	"errors"
	"net/http"

	"github.com/Hariprajaa05/Farmer-project/internal/logger"
	"github.com/Hariprajaa05/Farmer-project/internal/logic"
	"github.com/gin-gonic/gin"
)

// 错误码
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeNotFound         = "NOT_FOUND"
	CodeRequestClosed    = "REQUEST_CLOSED"
	CodeConflict         = "CONFLICT"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternal         = "INTERNAL"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, code string, message string, retryable bool) {
	c.JSON(statusCode, Response{
		Success:   false,
		Message:   message,
		Data:      nil,
		Code:      code,
		Retryable: retryable,
	})
}

// HandleError 将业务错误映射为 HTTP 状态码
func HandleError(c *gin.Context, err error) {
	status, code := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	} else {
		logger.Debug("%s %s rejected: %v", c.Request.Method, c.FullPath(), err)
	}
	ErrorResponse(c, status, code, err.Error(), logic.IsRetryable(err))
}

// StatusFor 业务错误对应的状态码与错误码
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, logic.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, logic.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, logic.ErrRequestClosed):
		return http.StatusConflict, CodeRequestClosed
	case errors.Is(err, logic.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, logic.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, CodeStoreUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
