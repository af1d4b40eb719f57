package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "salesperf", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, int64(32<<20), cfg.HTTP.MaxBodySize)
	assert.Equal(t, 10, cfg.Report.TopProductsLimit)
	assert.Equal(t, "simple_discount", cfg.Report.RevenueStrategy)
	assert.Equal(t, "rank_profit", cfg.Report.BonusStrategy)
	assert.Equal(t, 0.15, cfg.Report.BonusTopRate)
	assert.Equal(t, 0.10, cfg.Report.BonusRunnerUpRate)
	assert.Equal(t, 0.05, cfg.Report.BonusDefaultRate)
	assert.Len(t, cfg.Report.BulkTiers, 3)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "salesperf", cfg.Metrics.Namespace)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[app]
name = "perf-test"
port = "9000"

[log]
level = "debug"
format = "json"

[http]
read_timeout = "5s"
max_body_size = 1024

[report]
top_products_limit = 3
revenue_strategy = "bulk_discount"
bonus_strategy = "flat_profit_share"
bonus_top_rate = 0.2
bonus_runner_up_rate = 0
bonus_default_rate = 0.01

[[report.bulk_tiers]]
min_quantity = 5
extra_discount = 1.5

[metrics]
enabled = false
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "perf-test", cfg.App.Name)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, int64(1024), cfg.HTTP.MaxBodySize)
	assert.Equal(t, 3, cfg.Report.TopProductsLimit)
	assert.Equal(t, "bulk_discount", cfg.Report.RevenueStrategy)
	assert.Equal(t, "flat_profit_share", cfg.Report.BonusStrategy)
	assert.Equal(t, 0.2, cfg.Report.BonusTopRate)
	assert.Equal(t, 0.0, cfg.Report.BonusRunnerUpRate)
	assert.Equal(t, []BulkTierConfig{{MinQuantity: 5, ExtraDiscount: 1.5}}, cfg.Report.BulkTiers)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[report]
top_products_limit = 3
`)
	t.Setenv("SALESPERF_REPORT_TOP_PRODUCTS_LIMIT", "7")
	t.Setenv("SALESPERF_APP_PORT", "9100")
	t.Setenv("SALESPERF_REPORT_BONUS_TOP_RATE", "0.3")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Report.TopProductsLimit)
	assert.Equal(t, "9100", cfg.App.Port)
	assert.Equal(t, 0.3, cfg.Report.BonusTopRate)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "unknown log format",
			content: "[log]\nformat = \"xml\"\n",
			errMsg:  "log.format",
		},
		{
			name:    "negative top limit",
			content: "[report]\ntop_products_limit = -1\n",
			errMsg:  "report.top_products_limit",
		},
		{
			name:    "rate above one",
			content: "[report]\nbonus_top_rate = 1.5\n",
			errMsg:  "report.bonus_top_rate",
		},
		{
			name:    "non positive tier",
			content: "[[report.bulk_tiers]]\nmin_quantity = 0\nextra_discount = 2\n",
			errMsg:  "min_quantity",
		},
		{
			name:    "tier discount above hundred",
			content: "[[report.bulk_tiers]]\nmin_quantity = 1\nextra_discount = 120\n",
			errMsg:  "extra_discount",
		},
		{
			name:    "console logs in production",
			content: "[app]\nenv = \"production\"\n[log]\nformat = \"console\"\n",
			errMsg:  "production",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestReportConfig_StrategySettings(t *testing.T) {
	rc := ReportConfig{
		RevenueStrategy:   "bulk_discount",
		BonusStrategy:     "rank_profit",
		BonusTopRate:      0.15,
		BonusRunnerUpRate: 0.1,
		BonusDefaultRate:  0.05,
		BulkTiers:         []BulkTierConfig{{MinQuantity: 10, ExtraDiscount: 2}},
	}

	settings := rc.StrategySettings()

	assert.True(t, settings.RankRates.Top.Equal(decimal.RequireFromString("0.15")))
	assert.True(t, settings.RankRates.RunnerUp.Equal(decimal.RequireFromString("0.1")))
	assert.True(t, settings.RankRates.Default.Equal(decimal.RequireFromString("0.05")))
	require.Len(t, settings.VolumeTiers, 1)
	assert.Equal(t, int64(10), settings.VolumeTiers[0].MinQuantity)
	assert.True(t, settings.VolumeTiers[0].ExtraDiscount.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "bulk_discount", settings.DefaultRevenue)
	assert.Equal(t, "rank_profit", settings.DefaultBonus)
}
