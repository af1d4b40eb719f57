package revenue

import (
	"github.com/erp/salesperf/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SimpleDiscountStrategy is the canonical revenue rule:
// sale_price × quantity × (1 − discount/100)
type SimpleDiscountStrategy struct {
	strategy.BaseStrategy
}

// NewSimpleDiscountStrategy creates the canonical revenue strategy
func NewSimpleDiscountStrategy() *SimpleDiscountStrategy {
	return &SimpleDiscountStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"simple_discount",
			strategy.StrategyTypeRevenue,
			"Sale price times quantity less the percentage discount",
		),
	}
}

// ComputeItemRevenue applies the line discount to the line total.
// Discounts outside 0..100 are used as given.
func (s *SimpleDiscountStrategy) ComputeItemRevenue(revCtx strategy.RevenueContext) decimal.Decimal {
	return discountedTotal(revCtx.SalePrice, revCtx.Quantity, revCtx.Discount)
}

func discountedTotal(price decimal.Decimal, quantity int64, discountPercent decimal.Decimal) decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))
	return price.Mul(decimal.NewFromInt(quantity)).Mul(multiplier)
}
