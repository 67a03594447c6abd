package handler

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	"github.com/user/actorhub/internal/model"
	"github.com/user/actorhub/internal/service"
)

// notblank: 去掉首尾空白后不能为空
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

// ActorRequest 创建和更新共用的请求体
type ActorRequest struct {
	Name    string `json:"name" binding:"required,notblank,max=100"`
	Details string `json:"details"`
	Type    string `json:"type" binding:"required,notblank,max=50"`
	Rank    int    `json:"rank" binding:"required,gt=0"`
	Source  string `json:"source" binding:"required,notblank,max=50"`
}

func (r ActorRequest) toInput() service.ActorInput {
	return service.ActorInput{
		Name:    strings.TrimSpace(r.Name),
		Details: r.Details,
		Type:    strings.TrimSpace(r.Type),
		Rank:    r.Rank,
		Source:  strings.TrimSpace(r.Source),
	}
}

// ListQuery 列表查询参数
type ListQuery struct {
	Name       string `form:"name"`
	RankStart  *int   `form:"rankStart" binding:"omitempty,gt=0"`
	RankEnd    *int   `form:"rankEnd" binding:"omitempty,gt=0"`
	PageNumber int    `form:"pageNumber,default=1" binding:"gte=1"`
	PageSize   int    `form:"pageSize,default=10" binding:"gte=1,lte=100"`
}

func (q ListQuery) toModel() model.ActorQuery {
	return model.ActorQuery{
		Name:       strings.TrimSpace(q.Name),
		RankStart:  q.RankStart,
		RankEnd:    q.RankEnd,
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
	}
}

// ActorBasic 列表项
type ActorBasic struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
