// Package scraper 负责从外部站点抓取演员榜单。
//
// 每个站点一个 Scraper 实现，通过 Registry 按配置的 provider 名称选出唯一实现；
// 实现只负责抓取和解析，不落库。
package scraper

import (
	"context"

	"code.cloudfoundry.org/lager/v3"
	"github.com/user/actorhub/internal/model"
	"github.com/user/actorhub/internal/utils"
)

const (
	ProviderIMDb = "IMDb"
	ProviderMock = "MockProvider"

	userAgent = "actorhub-scraper/1.0"
)

// Scraper 抓取一次榜单并返回解析成功的演员（未持久化）
//
// 约束：
// - 网络/传输失败返回 *model.FetchError，不返回部分结果
// - 单条记录解析失败只记日志并跳过，不影响其他记录
type Scraper interface {
	Provider() string
	Scrape(ctx context.Context) ([]model.Actor, error)
}

// Deps 构造 Scraper 所需的依赖，由 Registry 注入
type Deps struct {
	Client *utils.HTTPClient // 已绑定该 provider 的基础地址
	Logger lager.Logger
	URI    string // 配置中的抓取地址，相对地址按基础地址解析
}

// Factory 构造某个 provider 的 Scraper
type Factory func(Deps) Scraper
