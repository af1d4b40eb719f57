package main

import (
	"fmt"

	appreport "github.com/erp/salesperf/internal/application/report"
	"github.com/erp/salesperf/internal/domain/report"
	"github.com/erp/salesperf/internal/infrastructure/config"
	"github.com/erp/salesperf/internal/infrastructure/logger"
	"github.com/erp/salesperf/internal/infrastructure/metrics"
	infrastrategy "github.com/erp/salesperf/internal/infrastructure/strategy"
	"github.com/erp/salesperf/internal/interfaces/http/handler"
	"github.com/erp/salesperf/internal/interfaces/http/middleware"
	"github.com/erp/salesperf/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "1.0.0"

// newEngine wires strategies, the report service and every HTTP route
func newEngine(cfg *config.Config, log *zap.Logger) (*gin.Engine, error) {
	registry, err := infrastrategy.NewRegistryWithSettings(cfg.Report.StrategySettings())
	if err != nil {
		return nil, fmt.Errorf("strategy registry: %w", err)
	}

	sinks := report.MultiSink{logger.NewWarningSink(log)}
	opts := []appreport.ServiceOption{
		appreport.WithTopProductsLimit(cfg.Report.TopProductsLimit),
	}

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		mcfg := metrics.DefaultConfig()
		mcfg.Namespace = cfg.Metrics.Namespace
		mcfg.IncludeRuntime = true
		collector = metrics.NewCollector(mcfg)
		sinks = append(sinks, collector)
		opts = append(opts, appreport.WithObserver(collector))
	}
	opts = append(opts, appreport.WithWarningSink(sinks))

	service := appreport.NewSellerPerformanceService(registry, log, opts...)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if collector != nil {
		engine.Use(collector.GinMiddleware())
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	system := handler.NewSystemHandler(cfg.App.Name, version)
	engine.GET("/health", system.Health)
	if collector != nil {
		engine.GET(cfg.Metrics.Path, gin.WrapH(collector.Handler()))
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewReportHandler(service, log))
	r.Setup()

	log.Info("Routes registered",
		zap.String("api_prefix", r.APIPrefix()),
		zap.Bool("metrics", collector != nil),
	)
	return engine, nil
}
