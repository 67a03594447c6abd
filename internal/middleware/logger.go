package middleware

import (
	"errors"
	"net/http"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/gin-gonic/gin"
)

// Logger 请求日志中间件
func Logger(logger lager.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		// 处理请求
		c.Next()

		data := lager.Data{
			"method":  c.Request.Method,
			"path":    path,
			"ip":      c.ClientIP(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			var err error = errors.New(http.StatusText(c.Writer.Status()))
			if last := c.Errors.Last(); last != nil {
				err = last.Err
			}
			logger.Error("request", err, data)
			return
		}
		logger.Info("request", data)
	}
}
