package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"code.cloudfoundry.org/lager/v3"
	"github.com/user/actorhub/internal/config"
	"github.com/user/actorhub/internal/model"
	"github.com/user/actorhub/internal/utils"
)

const (
	imdbBaseURL = "https://www.imdb.com"
	mockBaseURL = "https://www.mock.com"
)

// Registration 一个 provider 的声明：名称、基础地址和构造函数
type Registration struct {
	Name    string
	BaseURL string
	New     Factory
}

// Registry 编译期确定的 provider 注册表
// 重复名称不在注册时拒绝，而是在 Resolve 时作为配置错误报告
type Registry struct {
	regs []Registration
}

func NewRegistry(regs ...Registration) Registry {
	return Registry{regs: append([]Registration(nil), regs...)}
}

// DefaultRegistry 内置的全部 provider
func DefaultRegistry() Registry {
	return NewRegistry(
		Registration{Name: ProviderIMDb, BaseURL: imdbBaseURL, New: NewIMDbScraper},
		Registration{Name: ProviderMock, BaseURL: mockBaseURL, New: NewMockScraper},
	)
}

// Names 已注册的 provider 名称
func (r Registry) Names() []string {
	names := make([]string, 0, len(r.regs))
	for _, reg := range r.regs {
		names = append(names, reg.Name)
	}
	return names
}

// Resolve 按配置选出唯一的 Scraper 并注入绑定了基础地址的 HTTP 客户端。
// 配置缺失、没有匹配或多个匹配都返回 *model.ConfigurationError，此时不会发出任何请求。
func (r Registry) Resolve(cfg config.ScraperConfig, logger lager.Logger, opts ...utils.ClientOption) (Scraper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := url.Parse(cfg.URI); err != nil {
		return nil, &model.ConfigurationError{Reason: "Scraper.URI 不是合法地址", Err: err}
	}

	want := strings.TrimSpace(cfg.Provider)
	var matches []Registration
	for _, reg := range r.regs {
		if strings.EqualFold(strings.TrimSpace(reg.Name), want) {
			matches = append(matches, reg)
		}
	}

	switch len(matches) {
	case 0:
		return nil, &model.ConfigurationError{
			Reason: fmt.Sprintf("未知 provider：%q（可选：%s）", want, strings.Join(r.Names(), ", ")),
		}
	case 1:
	default:
		return nil, &model.ConfigurationError{
			Reason: fmt.Sprintf("provider %q 被 %d 个实现声明", want, len(matches)),
		}
	}

	reg := matches[0]
	if reg.New == nil {
		return nil, &model.ConfigurationError{Reason: fmt.Sprintf("provider %q 缺少构造函数", reg.Name)}
	}

	clientOpts := append([]utils.ClientOption{
		utils.WithUserAgent(fmt.Sprintf("%s (+%s)", userAgent, reg.Name)),
	}, opts...)
	client, err := utils.NewHTTPClient(reg.BaseURL, clientOpts...)
	if err != nil {
		return nil, &model.ConfigurationError{Reason: fmt.Sprintf("provider %q 基础地址无效", reg.Name), Err: err}
	}

	return reg.New(Deps{
		Client: client,
		Logger: logger.Session("scraper", lager.Data{"provider": reg.Name}),
		URI:    cfg.URI,
	}), nil
}
