package scraper

import (
	"context"

	"code.cloudfoundry.org/lager/v3"
	"github.com/user/actorhub/internal/model"
	"github.com/user/actorhub/internal/utils"
)

// IMDbScraper 抓取 IMDb 的演员榜单页（/list/lsXXXX/）
type IMDbScraper struct {
	client *utils.HTTPClient
	logger lager.Logger
	uri    string
}

func NewIMDbScraper(d Deps) Scraper {
	return &IMDbScraper{client: d.Client, logger: d.Logger, uri: d.URI}
}

func (s *IMDbScraper) Provider() string { return ProviderIMDb }

// Scrape 抓取并解析榜单
func (s *IMDbScraper) Scrape(ctx context.Context) ([]model.Actor, error) {
	s.logger.Info("fetch-started", lager.Data{"uri": s.uri, "base": s.client.BaseURL()})

	doc, err := s.client.GetDocument(ctx, s.uri)
	if err != nil {
		s.logger.Error("fetch-failed", err, lager.Data{"uri": s.uri})
		return nil, err
	}

	return ParseListing(doc, ProviderIMDb, s.logger), nil
}
