package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnknownType 无法从页面解析出类型时使用的占位值
const UnknownType = "Unknown"

// Actor 演员记录
type Actor struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Details   string    `json:"details"`
	Type      string    `json:"type" gorm:"size:50;not null"`
	Rank      int       `json:"rank" gorm:"not null;uniqueIndex:idx_actors_rank"` // 排名，全表唯一
	Source    string    `json:"source" gorm:"size:50;not null"`                   // 数据来源，如 "IMDb"
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate 插入前分配 ID，之后不再改变
func (a *Actor) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
