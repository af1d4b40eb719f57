package report

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/salesperf/internal/domain/report"
	"github.com/erp/salesperf/internal/domain/shared/strategy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Run status labels passed to RunObserver
const (
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// StrategyResolver looks up named strategies; an empty name resolves to the default
type StrategyResolver interface {
	GetRevenueStrategy(name string) (strategy.RevenueStrategy, error)
	GetBonusStrategy(name string) (strategy.BonusStrategy, error)
	GetDefault(strategyType strategy.StrategyType) string
	Describe() []strategy.Strategy
}

// RunObserver is notified about every report run
type RunObserver interface {
	ObserveRun(status string, duration time.Duration)
	ObserveSkipped(records, items int)
}

// GenerateRequest selects the strategies for one run.
// Empty names and a zero limit fall back to the service defaults.
type GenerateRequest struct {
	RevenueStrategy  string `json:"revenue_strategy,omitempty" form:"revenue_strategy"`
	BonusStrategy    string `json:"bonus_strategy,omitempty" form:"bonus_strategy"`
	TopProductsLimit int    `json:"top_products_limit,omitempty" form:"top_products_limit"`
}

// SellerPerformanceSummary describes a finished run
type SellerPerformanceSummary struct {
	RunID            string          `json:"run_id"`
	GeneratedAt      time.Time       `json:"generated_at"`
	RevenueStrategy  string          `json:"revenue_strategy"`
	BonusStrategy    string          `json:"bonus_strategy"`
	Sellers          int             `json:"sellers"`
	RecordsProcessed int             `json:"records_processed"`
	RecordsSkipped   int             `json:"records_skipped"`
	ItemsProcessed   int             `json:"items_processed"`
	ItemsSkipped     int             `json:"items_skipped"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	TotalBonus       decimal.Decimal `json:"total_bonus"`
}

// SellerPerformanceResult is the report together with its diagnostics
type SellerPerformanceResult struct {
	Rows     []report.ReportRow
	Warnings []report.Warning
	Summary  SellerPerformanceSummary
}

// SellerPerformanceService runs the seller performance pipeline with registry strategies
type SellerPerformanceService struct {
	strategies       StrategyResolver
	logger           *zap.Logger
	observer         RunObserver
	warnings         report.WarningSink
	topProductsLimit int
	now              func() time.Time
}

// ServiceOption configures a SellerPerformanceService
type ServiceOption func(*SellerPerformanceService)

// WithObserver reports run outcomes to observer
func WithObserver(observer RunObserver) ServiceOption {
	return func(s *SellerPerformanceService) {
		s.observer = observer
	}
}

// WithWarningSink forwards warnings to sink in addition to the result
func WithWarningSink(sink report.WarningSink) ServiceOption {
	return func(s *SellerPerformanceService) {
		s.warnings = sink
	}
}

// WithTopProductsLimit sets the default top products limit
func WithTopProductsLimit(limit int) ServiceOption {
	return func(s *SellerPerformanceService) {
		s.topProductsLimit = limit
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) ServiceOption {
	return func(s *SellerPerformanceService) {
		s.now = now
	}
}

// NewSellerPerformanceService creates a new SellerPerformanceService
func NewSellerPerformanceService(strategies StrategyResolver, logger *zap.Logger, opts ...ServiceOption) *SellerPerformanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SellerPerformanceService{
		strategies:       strategies,
		logger:           logger,
		topProductsLimit: report.DefaultTopProductsLimit,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate computes the seller performance report for data
func (s *SellerPerformanceService) Generate(ctx context.Context, data *report.SalesData, req GenerateRequest) (*SellerPerformanceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := s.now()

	if err := validateData(data); err != nil {
		return nil, s.fail(start, err)
	}

	revenue, err := s.strategies.GetRevenueStrategy(req.RevenueStrategy)
	if err != nil {
		return nil, s.fail(start, fmt.Errorf("%w: revenue strategy %q: %v", report.ErrInvalidOptions, req.RevenueStrategy, err))
	}
	bonus, err := s.strategies.GetBonusStrategy(req.BonusStrategy)
	if err != nil {
		return nil, s.fail(start, fmt.Errorf("%w: bonus strategy %q: %v", report.ErrInvalidOptions, req.BonusStrategy, err))
	}

	limit := req.TopProductsLimit
	if limit <= 0 {
		limit = s.topProductsLimit
	}

	collector := report.NewWarningCollector()
	rows, stats, err := analyze(data, &Options{
		Revenue:          revenue,
		Bonus:            bonus,
		Warnings:         report.MultiSink{collector, s.warnings},
		TopProductsLimit: limit,
	})
	if err != nil {
		return nil, s.fail(start, err)
	}

	summary := SellerPerformanceSummary{
		RunID:            uuid.NewString(),
		GeneratedAt:      start,
		RevenueStrategy:  revenue.Name(),
		BonusStrategy:    bonus.Name(),
		Sellers:          len(rows),
		RecordsProcessed: stats.RecordsProcessed,
		RecordsSkipped:   stats.RecordsSkipped,
		ItemsProcessed:   stats.ItemsProcessed,
		ItemsSkipped:     stats.ItemsSkipped,
		TotalRevenue:     decimal.Zero,
		TotalProfit:      decimal.Zero,
		TotalBonus:       decimal.Zero,
	}
	for _, row := range rows {
		summary.TotalRevenue = summary.TotalRevenue.Add(row.Revenue)
		summary.TotalProfit = summary.TotalProfit.Add(row.Profit)
		summary.TotalBonus = summary.TotalBonus.Add(row.Bonus)
	}

	duration := s.now().Sub(start)
	if s.observer != nil {
		s.observer.ObserveRun(RunStatusSuccess, duration)
		s.observer.ObserveSkipped(stats.RecordsSkipped, stats.ItemsSkipped)
	}
	s.logger.Info("Seller performance report generated",
		zap.String("run_id", summary.RunID),
		zap.String("revenue_strategy", summary.RevenueStrategy),
		zap.String("bonus_strategy", summary.BonusStrategy),
		zap.Int("sellers", summary.Sellers),
		zap.Int("records_processed", stats.RecordsProcessed),
		zap.Int("records_skipped", stats.RecordsSkipped),
		zap.Int("items_skipped", stats.ItemsSkipped),
		zap.Duration("duration", duration),
	)

	return &SellerPerformanceResult{
		Rows:     rows,
		Warnings: collector.Warnings(),
		Summary:  summary,
	}, nil
}

func (s *SellerPerformanceService) fail(start time.Time, err error) error {
	if s.observer != nil {
		s.observer.ObserveRun(RunStatusFailed, s.now().Sub(start))
	}
	s.logger.Warn("Seller performance report rejected", zap.Error(err))
	return err
}

// ListStrategies describes every strategy a request can select
func (s *SellerPerformanceService) ListStrategies() []StrategyResponse {
	described := s.strategies.Describe()
	result := make([]StrategyResponse, len(described))
	for i, st := range described {
		result[i] = StrategyResponse{
			Name:        st.Name(),
			Type:        st.Type().String(),
			Description: st.Description(),
			Default:     s.strategies.GetDefault(st.Type()) == st.Name(),
		}
	}
	return result
}
