package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"code.cloudfoundry.org/lager/v3"
	"github.com/gin-gonic/gin"
	"github.com/user/actorhub/internal/utils"
)

// Recovery 捕获 handler 中的 panic，记录日志并返回 500
func Recovery(logger lager.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			stack := string(debug.Stack())
			logger.Error("panic-recovered", fmt.Errorf("%v", r), lager.Data{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
				"stack":  stack,
			})

			if c.Writer.Written() {
				c.Abort()
				return
			}
			if production {
				utils.Error(c, http.StatusInternalServerError, internalErrorMessage)
				return
			}
			utils.ErrorWithDetails(c, http.StatusInternalServerError, internalErrorMessage, fmt.Sprintf("%v\n%s", r, stack))
		}()

		c.Next()
	}
}
