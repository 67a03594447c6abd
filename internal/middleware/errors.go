package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"code.cloudfoundry.org/lager/v3"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/user/actorhub/internal/model"
	"github.com/user/actorhub/internal/utils"
)

const internalErrorMessage = "服务器内部错误"

// ErrorHandler 把 handler 通过 c.Error 记录的错误转换成统一的错误响应
//
// 映射规则：
//   - *model.NotFoundError => 404
//   - *model.ConflictError => 409
//   - gin.ErrorTypeBind 或校验错误 => 400
//   - 其他 => 500
//
// 非生产环境在 details 中附带完整错误信息
func ErrorHandler(logger lager.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		status, message := classify(last)
		if status == http.StatusInternalServerError {
			logger.Error("unhandled-error", last.Err, lager.Data{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			})
		}

		if production {
			utils.Error(c, status, message)
			return
		}
		utils.ErrorWithDetails(c, status, message, last.Err.Error())
	}
}

func classify(e *gin.Error) (int, string) {
	var (
		notFound *model.NotFoundError
		conflict *model.ConflictError
		invalid  validator.ValidationErrors
	)

	switch {
	case errors.As(e.Err, &notFound):
		return http.StatusNotFound, notFound.Error()
	case errors.As(e.Err, &conflict):
		return http.StatusConflict, conflict.Error()
	case errors.As(e.Err, &invalid):
		return http.StatusBadRequest, describeValidation(invalid)
	case e.IsType(gin.ErrorTypeBind):
		return http.StatusBadRequest, "请求参数无效"
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

// describeValidation 例如 "请求参数无效: rank 必须满足 gt=0; name 缺失"
func describeValidation(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := lowerFirst(fe.Field())
		if fe.Tag() == "required" {
			parts = append(parts, field+" 缺失")
			continue
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s 必须满足 %s", field, rule))
	}
	return "请求参数无效: " + strings.Join(parts, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
