package router

import (
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/user/actorhub/internal/handler"
	"github.com/user/actorhub/internal/utils"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", h.Health)

	// ==================== 页面 ====================
	r.GET("/rankings", h.Rankings)

	// ==================== REST API ====================
	actors := r.Group("/api/v1/actors")
	{
		actors.GET("", h.ListActors)
		actors.POST("", h.CreateActor)
		actors.GET("/:id", h.GetActor)
		actors.PUT("/:id", h.UpdateActor)
		actors.DELETE("/:id", h.DeleteActor)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.NotFound(c, "")
	})
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(filepath.Join(templatesDir, "layouts", "*.html"))
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("模板目录 %s 缺少布局文件", templatesDir)
	}

	partials, err := filepath.Glob(filepath.Join(templatesDir, "partials", "*.html"))
	if err != nil {
		return nil, err
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(partials)+1)
		files = append(files, layouts...)
		files = append(files, partials...)
		return append(files, view)
	}

	funcMap := template.FuncMap{
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case int:
				if v == 0 {
					return defaultValue
				}
			case *int:
				if v == nil {
					return defaultValue
				}
				return *v
			case nil:
				return defaultValue
			}
			return value
		},
	}

	pages := []string{"rankings"}
	for _, page := range pages {
		viewPath := filepath.Join(templatesDir, "pages", page+".html")
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath)...)
	}

	return r, nil
}
