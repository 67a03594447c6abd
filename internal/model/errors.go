package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ConflictError 排名已被其他演员占用
type ConflictError struct {
	Rank int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("排名 %d 已被占用", e.Rank)
}

// NotFoundError 目标演员不存在
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("演员不存在: %s", e.ID)
}

// ConfigurationError 爬虫或服务配置无效，启动阶段致命
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return "配置无效: " + e.Reason
	}
	return fmt.Sprintf("配置无效: %s: %v", e.Reason, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// FetchError 抓取页面时的网络或传输错误，本次抓取整体放弃
type FetchError struct {
	URL        string
	StatusCode int // 0 表示未拿到响应
	Err        error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	b.WriteString("抓取失败")
	if e.URL != "" {
		b.WriteString(" ")
		b.WriteString(e.URL)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.StatusCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FetchError) Unwrap() error { return e.Err }
