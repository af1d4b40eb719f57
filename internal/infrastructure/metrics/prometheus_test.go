package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/erp/salesperf/internal/domain/report"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFamily(t *testing.T, c *Collector, name string) *dto.MetricFamily {
	t.Helper()
	families, err := c.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func counterValue(f *dto.MetricFamily, label, value string) float64 {
	for _, m := range f.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == label && l.GetValue() == value {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestNewCollector(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		c := NewCollector(Config{})
		assert.Equal(t, "salesperf", c.config.Namespace)
		assert.Equal(t, prometheus.DefBuckets, c.config.DurationBuckets)
		assert.NotNil(t, c.Registry())
	})

	t.Run("collectors are independent", func(t *testing.T) {
		a := NewCollector(DefaultConfig())
		b := NewCollector(DefaultConfig())
		a.ObserveRun("success", time.Millisecond)

		f := findFamily(t, a, "salesperf_report_runs_total")
		assert.Equal(t, 1.0, counterValue(f, "status", "success"))

		families, err := b.Gather()
		require.NoError(t, err)
		for _, f := range families {
			assert.NotEqual(t, "salesperf_report_runs_total", f.GetName())
		}
	})
}

func TestCollector_ObserveRun(t *testing.T) {
	c := NewCollector(Config{Namespace: "test", Subsystem: "pipeline"})

	c.ObserveRun("success", 20*time.Millisecond)
	c.ObserveRun("success", 30*time.Millisecond)
	c.ObserveRun("failed", time.Millisecond)

	runs := findFamily(t, c, "test_pipeline_report_runs_total")
	assert.Equal(t, 2.0, counterValue(runs, "status", "success"))
	assert.Equal(t, 1.0, counterValue(runs, "status", "failed"))

	duration := findFamily(t, c, "test_pipeline_report_run_duration_seconds")
	require.Len(t, duration.GetMetric(), 1)
	assert.Equal(t, uint64(3), duration.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestCollector_ObserveSkipped(t *testing.T) {
	c := NewCollector(DefaultConfig())

	c.ObserveSkipped(1, 2)
	c.ObserveSkipped(0, 3)

	f := findFamily(t, c, "salesperf_report_skipped_total")
	assert.Equal(t, 1.0, counterValue(f, "unit", "record"))
	assert.Equal(t, 5.0, counterValue(f, "unit", "item"))
}

func TestCollector_Warn(t *testing.T) {
	c := NewCollector(DefaultConfig())
	var sink report.WarningSink = c

	sink.Warn(report.Warning{Kind: report.WarningUnknownSeller})
	sink.Warn(report.Warning{Kind: report.WarningUnknownProduct})
	sink.Warn(report.Warning{Kind: report.WarningUnknownProduct})

	f := findFamily(t, c, "salesperf_report_warnings_total")
	assert.Equal(t, 1.0, counterValue(f, "kind", "unknown_seller"))
	assert.Equal(t, 2.0, counterValue(f, "kind", "unknown_product"))
}

func TestCollector_GinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := NewCollector(DefaultConfig())

	router := gin.New()
	router.Use(c.GinMiddleware())
	router.GET("/items/:id", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	f := findFamily(t, c, "salesperf_http_requests_total")
	assert.Equal(t, 2.0, counterValue(f, "route", "/items/:id"))
	assert.Equal(t, 1.0, counterValue(f, "route", "unmatched"))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector(Config{IncludeRuntime: true})
	c.ObserveRun("success", time.Millisecond)

	server := httptest.NewServer(c.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `salesperf_report_runs_total{status="success"} 1`))
	assert.Contains(t, string(body), "go_goroutines")
}
