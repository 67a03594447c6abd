package scraper

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"code.cloudfoundry.org/lager/v3"
	"github.com/PuerkitoBio/goquery"
	"github.com/user/actorhub/internal/model"
)

//go:embed fixtures/mock_list.html
var mockListing []byte

// MockScraper 不访问网络，解析内置的榜单页，用于本地开发
type MockScraper struct {
	logger lager.Logger
}

func NewMockScraper(d Deps) Scraper {
	return &MockScraper{logger: d.Logger}
}

func (s *MockScraper) Provider() string { return ProviderMock }

func (s *MockScraper) Scrape(ctx context.Context) ([]model.Actor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(mockListing))
	if err != nil {
		return nil, fmt.Errorf("解析内置榜单失败: %w", err)
	}
	return ParseListing(doc, ProviderMock, s.logger), nil
}
