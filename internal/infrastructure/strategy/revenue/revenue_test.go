package revenue

import (
	"testing"

	"github.com/erp/salesperf/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSimpleDiscountStrategy_ComputeItemRevenue(t *testing.T) {
	s := NewSimpleDiscountStrategy()

	tests := []struct {
		name     string
		quantity int64
		price    string
		discount string
		expected string
	}{
		{name: "ten percent off", quantity: 2, price: "100", discount: "10", expected: "180"},
		{name: "no discount", quantity: 3, price: "19.99", discount: "0", expected: "59.97"},
		{name: "full discount", quantity: 5, price: "40", discount: "100", expected: "0"},
		{name: "fractional discount", quantity: 1, price: "200", discount: "12.5", expected: "175"},
		{name: "discount above 100 is not clamped", quantity: 1, price: "10", discount: "150", expected: "-5"},
		{name: "zero quantity", quantity: 0, price: "10", discount: "10", expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ComputeItemRevenue(strategy.RevenueContext{
				SKU:       "SKU_001",
				Quantity:  tt.quantity,
				SalePrice: decimal.RequireFromString(tt.price),
				Discount:  decimal.RequireFromString(tt.discount),
			})
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "got %s", got)
		})
	}
}

func TestSimpleDiscountStrategy_Metadata(t *testing.T) {
	s := NewSimpleDiscountStrategy()
	assert.Equal(t, "simple_discount", s.Name())
	assert.Equal(t, strategy.StrategyTypeRevenue, s.Type())
	assert.NotEmpty(t, s.Description())
}

func TestBulkDiscountStrategy_ComputeItemRevenue(t *testing.T) {
	// Unsorted on purpose
	s := NewBulkDiscountStrategy([]VolumeTier{
		{MinQuantity: 100, ExtraDiscount: decimal.NewFromInt(10)},
		{MinQuantity: 10, ExtraDiscount: decimal.NewFromInt(5)},
	})

	tests := []struct {
		name     string
		quantity int64
		expected string
	}{
		{name: "below first tier", quantity: 9, expected: "90"},
		{name: "at first tier boundary", quantity: 10, expected: "95"},
		{name: "between tiers", quantity: 50, expected: "475"},
		{name: "at highest tier", quantity: 100, expected: "900"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ComputeItemRevenue(strategy.RevenueContext{
				Quantity:  tt.quantity,
				SalePrice: decimal.NewFromInt(10),
				Discount:  decimal.Zero,
			})
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "got %s", got)
		})
	}
}

func TestBulkDiscountStrategy_CombinesWithLineDiscount(t *testing.T) {
	s := NewBulkDiscountStrategy([]VolumeTier{{MinQuantity: 10, ExtraDiscount: decimal.NewFromInt(10)}})

	// 10 × 100 × 0.8 × 0.9
	got := s.ComputeItemRevenue(strategy.RevenueContext{
		Quantity:  10,
		SalePrice: decimal.NewFromInt(100),
		Discount:  decimal.NewFromInt(20),
	})
	assert.True(t, got.Equal(decimal.NewFromInt(720)), "got %s", got)
}

func TestBulkDiscountStrategy_GetTiers(t *testing.T) {
	s := NewBulkDiscountStrategy(DefaultVolumeTiers())

	tiers := s.GetTiers()
	assert.Len(t, tiers, 3)
	assert.Equal(t, int64(10), tiers[0].MinQuantity)
	assert.Equal(t, int64(100), tiers[2].MinQuantity)

	// returned slice is a copy
	tiers[0].MinQuantity = 999
	assert.Equal(t, int64(10), s.GetTiers()[0].MinQuantity)
}

func TestBulkDiscountStrategy_NoTiersBehavesLikeSimple(t *testing.T) {
	bulk := NewBulkDiscountStrategy(nil)
	simple := NewSimpleDiscountStrategy()

	revCtx := strategy.RevenueContext{
		Quantity:  500,
		SalePrice: decimal.RequireFromString("12.34"),
		Discount:  decimal.RequireFromString("7"),
	}
	assert.True(t, bulk.ComputeItemRevenue(revCtx).Equal(simple.ComputeItemRevenue(revCtx)))
}
