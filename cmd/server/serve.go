package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/user/actorhub/internal/handler"
	"github.com/user/actorhub/internal/middleware"
	"github.com/user/actorhub/internal/repository"
	"github.com/user/actorhub/internal/router"
	"github.com/user/actorhub/internal/scraper"
	"github.com/user/actorhub/internal/service"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "抓取一次榜单后启动 HTTP 服务（默认命令）",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	// 配置错误在连接数据库之前暴露
	s, err := scraper.DefaultRegistry().Resolve(cfg.Scraper, logger)
	if err != nil {
		logger.Error("resolve-scraper-failed", err)
		return err
	}

	db, err := repository.InitDB(cfg.Database, cfg.IsProduction())
	if err != nil {
		logger.Error("init-db-failed", err, lager.Data{"driver": cfg.Database.Driver})
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	repos := repository.NewRepositories(db)
	defer repos.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 启动时抓取一次，失败不影响服务启动
	ingestCtx, cancel := context.WithTimeout(ctx, cfg.IngestTimeout)
	report, err := service.NewIngestor(s, repos.Actor, logger).Run(ingestCtx)
	cancel()
	if err != nil {
		logger.Error("startup-ingest-failed", err, lager.Data{"provider": s.Provider()})
	} else {
		logger.Info("startup-ingest-done", lager.Data{
			"scraped":  report.Scraped,
			"inserted": report.Inserted,
			"skipped":  report.Skipped,
			"total":    report.Total,
		})
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.Logger(logger.Session("http")))
	r.Use(middleware.Recovery(logger, cfg.IsProduction()))
	r.Use(middleware.ErrorHandler(logger, cfg.IsProduction()))

	renderer, err := router.LoadTemplates(cfg.TemplatesDir)
	if err != nil {
		logger.Error("load-templates-failed", err, lager.Data{"dir": cfg.TemplatesDir})
		return err
	}
	r.HTMLRender = renderer

	h := handler.NewHandler(service.NewActorService(repos.Actor, logger), cfg, logger)
	router.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", lager.Data{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("服务器启动失败: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting-down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("服务器强制关闭: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server-exited", err)
		return err
	}
	logger.Info("server-exited")
	return nil
}
