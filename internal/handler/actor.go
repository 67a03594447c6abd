package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListActors 分页查询演员
// GET /api/v1/actors?name=&rankStart=&rankEnd=&pageNumber=&pageSize=
func (h *Handler) ListActors(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	actors, err := h.Actors.List(c.Request.Context(), q.toModel())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toBasic(actors))
}

// GetActor 获取演员详情
func (h *Handler) GetActor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	actor, err := h.Actors.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, actor)
}

// CreateActor 创建演员
func (h *Handler) CreateActor(c *gin.Context) {
	var req ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	actor, err := h.Actors.Create(c.Request.Context(), req.toInput())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Location", c.FullPath()+"/"+actor.ID.String())
	c.JSON(http.StatusCreated, actor)
}

// UpdateActor 整体更新演员
func (h *Handler) UpdateActor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	actor, err := h.Actors.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, actor)
}

// DeleteActor 删除演员
func (h *Handler) DeleteActor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.Actors.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
