package logger

import (
	"testing"

	"github.com/erp/salesperf/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWarningSink_UnknownSeller(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	sink := NewWarningSink(zap.New(core))

	sink.Warn(report.Warning{Kind: report.WarningUnknownSeller, RecordIndex: 3, ItemIndex: -1, SellerID: "seller_9"})

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	assert.Equal(t, "seller with id seller_9 not found", logs[0].Message)

	fields := logs[0].ContextMap()
	assert.Equal(t, "unknown_seller", fields["kind"])
	assert.Equal(t, int64(3), fields["record_index"])
	assert.Equal(t, "seller_9", fields["seller_id"])
	assert.NotContains(t, fields, "item_index")
	assert.NotContains(t, fields, "sku")
}

func TestWarningSink_UnknownProduct(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	sink := NewWarningSink(zap.New(core))

	sink.Warn(report.Warning{Kind: report.WarningUnknownProduct, RecordIndex: 0, ItemIndex: 2, SKU: "SKU_404"})

	logs := recorded.FilterMessage("product with sku SKU_404 not found").All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, int64(2), fields["item_index"])
	assert.Equal(t, "SKU_404", fields["sku"])
}

func TestWarningSink_NilLogger(t *testing.T) {
	sink := NewWarningSink(nil)
	assert.NotPanics(t, func() {
		sink.Warn(report.Warning{Kind: report.WarningUnknownSeller})
	})
}
