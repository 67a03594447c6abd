package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/user/actorhub/internal/model"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	DriverPgx    = "pgx"
	DriverPq     = "postgres"
	DriverSQLite = "sqlite"
)

// Config 应用配置
type Config struct {
	Env           string `validate:"required"`
	Port          string `validate:"required,numeric"`
	LogLevel      string `validate:"oneof=debug info error"`
	TemplatesDir  string
	IngestTimeout time.Duration `validate:"gt=0"`
	Database      DatabaseConfig
	Scraper       ScraperConfig
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string `validate:"oneof=pgx postgres sqlite"`
	URL    string // postgres 连接串
	Path   string // sqlite 文件路径
}

// ScraperConfig 爬虫配置，启动时读取一次，之后不可变
type ScraperConfig struct {
	Provider string `validate:"required"`
	URI      string `validate:"required"`
}

// IsProduction 是否生产环境
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// DSN 根据驱动返回连接串
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	return d.URL
}

// Load 加载配置
// configFile 为空时只读取环境变量（以及 .env）
func Load(configFile string) (*Config, error) {
	// .env 不存在时直接使用系统环境变量
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		// 显式指定的配置文件必须存在
		if err := v.ReadInConfig(); err != nil {
			return nil, &model.ConfigurationError{Reason: "读取配置文件失败", Err: err}
		}
	}

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		v.GetString("db.user"), v.GetString("db.password"), v.GetString("db.host"),
		v.GetString("db.port"), v.GetString("db.name"), v.GetString("db.sslmode"))
	if u := v.GetString("db.url"); u != "" {
		dbURL = u
	}

	cfg := &Config{
		Env:           v.GetString("app.env"),
		Port:          v.GetString("port"),
		LogLevel:      strings.ToLower(v.GetString("log.level")),
		TemplatesDir:  v.GetString("templates.dir"),
		IngestTimeout: v.GetDuration("ingest.timeout"),
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("db.driver")),
			URL:    dbURL,
			Path:   v.GetString("db.path"),
		},
		Scraper: ScraperConfig{
			Provider: strings.TrimSpace(v.GetString("scraper.provider")),
			URI:      strings.TrimSpace(v.GetString("scraper.uri")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置，失败返回 *model.ConfigurationError
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &model.ConfigurationError{Reason: describe(err), Err: err}
	}
	return nil
}

// Validate 校验爬虫配置
func (s ScraperConfig) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return &model.ConfigurationError{Reason: describe(err), Err: err}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", EnvDevelopment)
	v.SetDefault("port", "5005")
	v.SetDefault("log.level", "info")
	v.SetDefault("templates.dir", "./web/templates")
	v.SetDefault("ingest.timeout", 60*time.Second)

	v.SetDefault("db.driver", DriverPgx)
	v.SetDefault("db.url", "")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.name", "actorhub")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "actorhub.db")

	// 无默认值，但需要让 AutomaticEnv 能识别这些 key
	v.SetDefault("scraper.provider", "")
	v.SetDefault("scraper.uri", "")
}

// describe 把校验错误转成字段列表，例如 "Scraper.Provider 缺失"
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Tag() == "required" {
			parts = append(parts, field+" 缺失")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s 不满足 %s", field, fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
