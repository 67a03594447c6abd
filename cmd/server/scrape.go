package main

import (
	"context"
	"encoding/json"
	"fmt"

	"code.cloudfoundry.org/lager/v3"
	"github.com/spf13/cobra"
	"github.com/user/actorhub/internal/repository"
	"github.com/user/actorhub/internal/scraper"
	"github.com/user/actorhub/internal/service"
)

var ingestFlag bool

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "执行一次抓取并以 JSON 输出结果",
	Long: `使用配置的 provider 抓取一次榜单。

默认只输出解析结果，不写数据库；加 --ingest 时按启动入库的规则写入并输出统计。`,
	Example: `  SCRAPER_PROVIDER=MockProvider SCRAPER_URI=/ actorhub scrape
  actorhub scrape --config actorhub.yaml --ingest`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().BoolVar(&ingestFlag, "ingest", false, "写入数据库")
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	s, err := scraper.DefaultRegistry().Resolve(cfg.Scraper, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.IngestTimeout)
	defer cancel()

	if !ingestFlag {
		actors, err := s.Scrape(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd, actors)
	}

	db, err := repository.InitDB(cfg.Database, cfg.IsProduction())
	if err != nil {
		logger.Error("init-db-failed", err, lager.Data{"driver": cfg.Database.Driver})
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	repos := repository.NewRepositories(db)
	defer repos.Close()

	report, err := service.NewIngestor(s, repos.Actor, logger).Run(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd, report)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
