package service

import (
	"context"
	"fmt"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/user/actorhub/internal/model"
	"github.com/user/actorhub/internal/scraper"
)

// IngestStore 入库需要的批量操作
type IngestStore interface {
	ExistingRanks(ctx context.Context, ranks []int) (map[int]struct{}, error)
	CreateBatch(ctx context.Context, actors []model.Actor) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// IngestReport 一次入库的统计
type IngestReport struct {
	Provider string        `json:"provider"`
	Scraped  int           `json:"scraped"`
	Inserted int           `json:"inserted"`
	Skipped  int           `json:"skipped"`
	Total    int64         `json:"total"` // 入库后表中的记录数
	Duration time.Duration `json:"duration"`
}

// Ingestor 抓取榜单并写入存储，已被占用的排名跳过，不覆盖已有记录
type Ingestor struct {
	scraper scraper.Scraper
	store   IngestStore
	logger  lager.Logger
}

// NewIngestor 创建入库器
func NewIngestor(s scraper.Scraper, store IngestStore, logger lager.Logger) *Ingestor {
	return &Ingestor{
		scraper: s,
		store:   store,
		logger:  logger.Session("ingest", lager.Data{"provider": s.Provider()}),
	}
}

// Run 执行一次抓取和入库
// 抓取失败时不写入任何数据，错误原样返回（通常是 *model.FetchError）
func (i *Ingestor) Run(ctx context.Context) (IngestReport, error) {
	start := time.Now()
	report := IngestReport{Provider: i.scraper.Provider()}
	i.logger.Info("started")

	actors, err := i.scraper.Scrape(ctx)
	if err != nil {
		return report, err
	}
	report.Scraped = len(actors)

	candidates, err := i.filter(ctx, actors)
	if err != nil {
		return report, err
	}

	inserted, err := i.store.CreateBatch(ctx, candidates)
	if err != nil {
		return report, fmt.Errorf("批量写入失败: %w", err)
	}
	report.Inserted = int(inserted)
	report.Skipped = report.Scraped - report.Inserted

	total, err := i.store.Count(ctx)
	if err != nil {
		return report, fmt.Errorf("统计记录数失败: %w", err)
	}
	report.Total = total
	report.Duration = time.Since(start)

	if lost := len(candidates) - report.Inserted; lost > 0 {
		// 过滤之后仍被并发写入抢占的排名
		i.logger.Info("skip-duplicate-rank", lager.Data{"count": lost, "reason": "conflict-on-insert"})
	}

	i.logger.Info("finished", lager.Data{
		"scraped":  report.Scraped,
		"inserted": report.Inserted,
		"skipped":  report.Skipped,
		"total":    report.Total,
		"duration": report.Duration.String(),
	})
	return report, nil
}

// filter 去掉批内重复排名（保留第一个）和存储中已占用的排名
func (i *Ingestor) filter(ctx context.Context, actors []model.Actor) ([]model.Actor, error) {
	seen := make(map[int]struct{}, len(actors))
	unique := make([]model.Actor, 0, len(actors))
	ranks := make([]int, 0, len(actors))

	for _, a := range actors {
		if _, dup := seen[a.Rank]; dup {
			i.logger.Info("skip-duplicate-rank", lager.Data{"rank": a.Rank, "name": a.Name, "reason": "duplicate-in-batch"})
			continue
		}
		seen[a.Rank] = struct{}{}
		unique = append(unique, a)
		ranks = append(ranks, a.Rank)
	}

	taken, err := i.store.ExistingRanks(ctx, ranks)
	if err != nil {
		return nil, fmt.Errorf("查询已有排名失败: %w", err)
	}

	out := unique[:0]
	for _, a := range unique {
		if _, exists := taken[a.Rank]; exists {
			i.logger.Info("skip-duplicate-rank", lager.Data{"rank": a.Rank, "name": a.Name, "reason": "rank-taken"})
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
