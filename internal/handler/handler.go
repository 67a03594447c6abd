package handler

import (
	"net/http"

	"code.cloudfoundry.org/lager/v3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/user/actorhub/internal/config"
	"github.com/user/actorhub/internal/model"
	"github.com/user/actorhub/internal/service"
)

const siteName = "ActorHub"

// Handler HTTP 处理器
type Handler struct {
	Actors *service.ActorService
	Config *config.Config
	Logger lager.Logger
}

// NewHandler 创建处理器
func NewHandler(actors *service.ActorService, cfg *config.Config, logger lager.Logger) *Handler {
	return &Handler{
		Actors: actors,
		Config: cfg,
		Logger: logger.Session("handler"),
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	res := gin.H{
		"SiteName": siteName,
		"Path":     c.Request.URL.Path,
		"Env":      h.Config.Env,
	}
	for k, v := range data {
		res[k] = v
	}
	return res
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Rankings 排行榜页面
func (h *Handler) Rankings(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	query := q.toModel()
	actors, err := h.Actors.List(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		return
	}

	query = query.Normalize()
	prev := 0
	if query.PageNumber > 1 {
		prev = query.PageNumber - 1
	}
	next := 0
	if len(actors) == query.PageSize {
		next = query.PageNumber + 1
	}

	c.HTML(http.StatusOK, "rankings.html", h.RenderData(c, gin.H{
		"Title":    "演员排行榜 - " + siteName,
		"Actors":   actors,
		"Query":    query,
		"PrevPage": prev,
		"NextPage": next,
	}))
}

// parseID 解析路径中的 id，格式错误按参数错误处理
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return uuid.Nil, false
	}
	return id, true
}

// toBasic 列表只返回 id 和名称
func toBasic(actors []model.Actor) []ActorBasic {
	out := make([]ActorBasic, 0, len(actors))
	for _, a := range actors {
		out = append(out, ActorBasic{ID: a.ID, Name: a.Name})
	}
	return out
}
