package logger

import (
	"github.com/erp/salesperf/internal/domain/report"
	"go.uber.org/zap"
)

// WarningSink writes skipped purchase records and items as warn-level entries
type WarningSink struct {
	logger *zap.Logger
}

// NewWarningSink creates a sink logging to logger
func NewWarningSink(logger *zap.Logger) *WarningSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WarningSink{logger: logger}
}

// Warn implements report.WarningSink
func (s *WarningSink) Warn(w report.Warning) {
	fields := []zap.Field{
		zap.String("kind", string(w.Kind)),
		zap.Int("record_index", w.RecordIndex),
	}
	if w.ItemIndex >= 0 {
		fields = append(fields, zap.Int("item_index", w.ItemIndex))
	}
	if w.SellerID != "" {
		fields = append(fields, zap.String("seller_id", w.SellerID))
	}
	if w.SKU != "" {
		fields = append(fields, zap.String("sku", w.SKU))
	}
	s.logger.Warn(w.Message(), fields...)
}
