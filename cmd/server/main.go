// Package main 是 actorhub 的入口：serve 启动 HTTP 服务，scrape 手动执行一次抓取。
package main

import (
	"fmt"
	"os"
	"strings"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"code.cloudfoundry.org/lager/v3"
	"github.com/spf13/cobra"
	"github.com/user/actorhub/internal/config"
)

// configFile 由 --config 指定
var configFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "actorhub",
	Short: "演员排行榜服务",
	Long: `actorhub 启动时从配置的站点抓取演员榜单并入库，
然后提供 /api/v1/actors 的增删改查接口。

配置来自环境变量（支持 .env），也可以用 --config 指定 YAML 文件。`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "配置文件路径（可选，YAML）")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scrapeCmd)
}

// newLogger 创建根日志，输出到标准错误，标准输出留给 scrape 的结果
func newLogger(level string) lager.Logger {
	logger := lager.NewLogger("actorhub")
	logger.RegisterSink(lager.NewWriterSink(os.Stderr, parseLevel(level)))
	return logger
}

func parseLevel(level string) lager.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return lager.DEBUG
	case "error":
		return lager.ERROR
	default:
		return lager.INFO
	}
}

// bootstrap 加载配置并按配置的级别创建日志
func bootstrap() (*config.Config, lager.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		newLogger("info").Error("load-config-failed", err)
		return nil, nil, err
	}
	return cfg, newLogger(cfg.LogLevel), nil
}
