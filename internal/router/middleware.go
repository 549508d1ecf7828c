package router

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Hariprajaa05/Farmer-project/internal/handler"
	"github.com/Hariprajaa05/Farmer-project/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderRequestID = "X-Request-ID"
	ctxKeyRequestID = "request_id"
)

// RequestID 为每个请求分配ID，沿用调用方传入的值
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AccessLog 访问日志
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		logger.With(
			zap.String("request_id", c.GetString(ctxKeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		).Info("request completed")
	}
}

// Recovery 捕获 panic 并返回统一错误响应
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered on %s %s (request %s): %v\n%s",
					c.Request.Method, c.Request.URL.Path, c.GetString(ctxKeyRequestID), r, debug.Stack())
				handler.ErrorResponse(c, http.StatusInternalServerError, handler.CodeInternal, "internal server error", false)
				c.Abort()
			}
		}()
		c.Next()
	}
}
