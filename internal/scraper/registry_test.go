package scraper

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/actorhub/internal/config"
	"github.com/user/actorhub/internal/model"
	"github.com/user/actorhub/internal/utils"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// countingClient 记录发出的请求数，任何请求都返回错误
func countingClient(calls *atomic.Int32) utils.ClientOption {
	return utils.WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			calls.Add(1)
			return nil, errors.New("unexpected request")
		}),
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     string
	}{
		{name: "mock", provider: "MockProvider", want: ProviderMock},
		{name: "imdb", provider: "IMDb", want: ProviderIMDb},
		{name: "case insensitive", provider: "imdb", want: ProviderIMDb},
		{name: "surrounding spaces", provider: "  mockprovider ", want: ProviderMock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			s, err := DefaultRegistry().Resolve(
				config.ScraperConfig{Provider: tt.provider, URI: "/list/ls054840033/"},
				lagertest.NewTestLogger("test"),
				countingClient(&calls),
			)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Provider())
			assert.Zero(t, calls.Load())
		})
	}
}

func TestResolve_ConfigurationErrors(t *testing.T) {
	dup := NewRegistry(
		Registration{Name: "IMDb", BaseURL: imdbBaseURL, New: NewIMDbScraper},
		Registration{Name: "imdb", BaseURL: imdbBaseURL, New: NewIMDbScraper},
	)

	tests := []struct {
		name     string
		registry Registry
		cfg      config.ScraperConfig
		reason   string
	}{
		{
			name:     "unknown provider",
			registry: DefaultRegistry(),
			cfg:      config.ScraperConfig{Provider: "Unknown", URI: "/list/"},
			reason:   "未知 provider",
		},
		{
			name:     "duplicate registration",
			registry: dup,
			cfg:      config.ScraperConfig{Provider: "IMDb", URI: "/list/"},
			reason:   "2 个实现",
		},
		{
			name:     "missing provider",
			registry: DefaultRegistry(),
			cfg:      config.ScraperConfig{URI: "/list/"},
			reason:   "Provider",
		},
		{
			name:     "missing uri",
			registry: DefaultRegistry(),
			cfg:      config.ScraperConfig{Provider: "IMDb"},
			reason:   "URI",
		},
		{
			name:     "nil factory",
			registry: NewRegistry(Registration{Name: "Broken", BaseURL: mockBaseURL}),
			cfg:      config.ScraperConfig{Provider: "Broken", URI: "/"},
			reason:   "缺少构造函数",
		},
		{
			name:     "relative base address",
			registry: NewRegistry(Registration{Name: "Relative", BaseURL: "/nowhere", New: NewIMDbScraper}),
			cfg:      config.ScraperConfig{Provider: "Relative", URI: "/"},
			reason:   "基础地址无效",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			s, err := tt.registry.Resolve(tt.cfg, lagertest.NewTestLogger("test"), countingClient(&calls))
			assert.Nil(t, s)

			var cerr *model.ConfigurationError
			require.True(t, errors.As(err, &cerr), "got %v", err)
			assert.Contains(t, cerr.Reason, tt.reason)
			assert.Zero(t, calls.Load(), "no fetch before a provider is resolved")
		})
	}
}

func TestMockScraper(t *testing.T) {
	s, err := DefaultRegistry().Resolve(
		config.ScraperConfig{Provider: ProviderMock, URI: "/"},
		lagertest.NewTestLogger("test"),
	)
	require.NoError(t, err)

	actors, err := s.Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, actors, 5)
	for i, a := range actors {
		assert.Equal(t, i+1, a.Rank)
		assert.Equal(t, ProviderMock, a.Source)
		assert.NotEmpty(t, a.Name)
		assert.NotEqual(t, model.UnknownType, a.Type)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Scrape(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
