package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/erp/salesperf/internal/infrastructure/strategy"
	"github.com/erp/salesperf/internal/infrastructure/strategy/bonus"
	"github.com/erp/salesperf/internal/infrastructure/strategy/revenue"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SALESPERF_REPORT_TOP_PRODUCTS_LIMIT
const EnvPrefix = "SALESPERF"

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Log     LogConfig
	HTTP    HTTPConfig
	Report  ReportConfig
	Metrics MetricsConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
}

// BulkTierConfig is one volume tier of the bulk_discount strategy
type BulkTierConfig struct {
	MinQuantity   int64   `mapstructure:"min_quantity"`
	ExtraDiscount float64 `mapstructure:"extra_discount"` // Percentage
}

// ReportConfig holds seller performance report settings
type ReportConfig struct {
	TopProductsLimit  int
	RevenueStrategy   string
	BonusStrategy     string
	BonusTopRate      float64
	BonusRunnerUpRate float64
	BonusDefaultRate  float64
	BulkTiers         []BulkTierConfig
}

// MetricsConfig holds Prometheus settings
type MetricsConfig struct {
	Enabled   bool
	Namespace string
	Path      string
}

// Load loads configuration from the default locations.
// Priority (highest to lowest):
// 1. Environment variables with SALESPERF_ prefix (e.g., SALESPERF_APP_PORT)
// 2. Variables from a .env file in the working directory
// 3. config.toml in ".", "./config" or "/app"
// 4. Built-in defaults
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from path; an empty path searches the default locations
func LoadFile(path string) (*Config, error) {
	// .env never overrides variables that are already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/app")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:  v.GetDuration("http.shutdown_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		},
		Report: ReportConfig{
			TopProductsLimit:  v.GetInt("report.top_products_limit"),
			RevenueStrategy:   v.GetString("report.revenue_strategy"),
			BonusStrategy:     v.GetString("report.bonus_strategy"),
			BonusTopRate:      v.GetFloat64("report.bonus_top_rate"),
			BonusRunnerUpRate: v.GetFloat64("report.bonus_runner_up_rate"),
			BonusDefaultRate:  v.GetFloat64("report.bonus_default_rate"),
		},
		Metrics: MetricsConfig{
			Enabled:   v.GetBool("metrics.enabled"),
			Namespace: v.GetString("metrics.namespace"),
			Path:      v.GetString("metrics.path"),
		},
	}

	if err := v.UnmarshalKey("report.bulk_tiers", &cfg.Report.BulkTiers); err != nil {
		return nil, fmt.Errorf("error reading report.bulk_tiers: %w", err)
	}

	// Unset rates take the canonical values; an explicit 0 is kept
	if !v.IsSet("report.bonus_top_rate") {
		cfg.Report.BonusTopRate = 0.15
	}
	if !v.IsSet("report.bonus_runner_up_rate") {
		cfg.Report.BonusRunnerUpRate = 0.10
	}
	if !v.IsSet("report.bonus_default_rate") {
		cfg.Report.BonusDefaultRate = 0.05
	}
	if !v.IsSet("metrics.enabled") {
		cfg.Metrics.Enabled = true
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "salesperf"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 32 << 20 // 32MB
	}
	if cfg.Report.TopProductsLimit == 0 {
		cfg.Report.TopProductsLimit = 10
	}
	if cfg.Report.RevenueStrategy == "" {
		cfg.Report.RevenueStrategy = "simple_discount"
	}
	if cfg.Report.BonusStrategy == "" {
		cfg.Report.BonusStrategy = "rank_profit"
	}
	if len(cfg.Report.BulkTiers) == 0 {
		for _, tier := range revenue.DefaultVolumeTiers() {
			extra, _ := tier.ExtraDiscount.Float64()
			cfg.Report.BulkTiers = append(cfg.Report.BulkTiers, BulkTierConfig{
				MinQuantity:   tier.MinQuantity,
				ExtraDiscount: extra,
			})
		}
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "salesperf"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

func (c *Config) validate() error {
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}

	if c.HTTP.MaxBodySize < 0 {
		return fmt.Errorf("http.max_body_size cannot be negative")
	}

	if c.Report.TopProductsLimit < 0 {
		return fmt.Errorf("report.top_products_limit cannot be negative")
	}
	rates := map[string]float64{
		"report.bonus_top_rate":       c.Report.BonusTopRate,
		"report.bonus_runner_up_rate": c.Report.BonusRunnerUpRate,
		"report.bonus_default_rate":   c.Report.BonusDefaultRate,
	}
	for key, rate := range rates {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", key, rate)
		}
	}
	for i, tier := range c.Report.BulkTiers {
		if tier.MinQuantity <= 0 {
			return fmt.Errorf("report.bulk_tiers[%d].min_quantity must be positive", i)
		}
		if tier.ExtraDiscount < 0 || tier.ExtraDiscount > 100 {
			return fmt.Errorf("report.bulk_tiers[%d].extra_discount must be between 0 and 100", i)
		}
	}

	if c.App.Env == "production" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be json in production")
	}

	return nil
}

// IsProduction reports whether the app runs in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// StrategySettings converts the report section into built-in strategy settings
func (c ReportConfig) StrategySettings() strategy.Settings {
	tiers := make([]revenue.VolumeTier, len(c.BulkTiers))
	for i, tier := range c.BulkTiers {
		tiers[i] = revenue.VolumeTier{
			MinQuantity:   tier.MinQuantity,
			ExtraDiscount: decimal.NewFromFloat(tier.ExtraDiscount),
		}
	}
	return strategy.Settings{
		RankRates: bonus.RankRates{
			Top:      decimal.NewFromFloat(c.BonusTopRate),
			RunnerUp: decimal.NewFromFloat(c.BonusRunnerUpRate),
			Default:  decimal.NewFromFloat(c.BonusDefaultRate),
		},
		VolumeTiers:    tiers,
		DefaultRevenue: c.RevenueStrategy,
		DefaultBonus:   c.BonusStrategy,
	}
}
