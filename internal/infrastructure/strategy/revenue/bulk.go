package revenue

import (
	"sort"

	"github.com/erp/salesperf/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
)

// VolumeTier grants an extra discount once a line reaches MinQuantity
type VolumeTier struct {
	MinQuantity   int64           `json:"min_quantity" mapstructure:"min_quantity"`
	ExtraDiscount decimal.Decimal `json:"extra_discount" mapstructure:"extra_discount"` // Percentage
}

// BulkDiscountStrategy applies the line discount, then an extra volume discount
// taken from the highest tier the quantity reaches
type BulkDiscountStrategy struct {
	strategy.BaseStrategy
	tiers []VolumeTier
}

// NewBulkDiscountStrategy creates a bulk discount strategy.
// Tiers may be given in any order; they are sorted by MinQuantity ascending.
func NewBulkDiscountStrategy(tiers []VolumeTier) *BulkDiscountStrategy {
	sortedTiers := make([]VolumeTier, len(tiers))
	copy(sortedTiers, tiers)
	sort.Slice(sortedTiers, func(i, j int) bool {
		return sortedTiers[i].MinQuantity < sortedTiers[j].MinQuantity
	})

	return &BulkDiscountStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"bulk_discount",
			strategy.StrategyTypeRevenue,
			"Line discount plus an extra discount for large quantities",
		),
		tiers: sortedTiers,
	}
}

// DefaultVolumeTiers returns common volume discount tiers
// - 2% extra for quantity >= 10
// - 5% extra for quantity >= 50
// - 8% extra for quantity >= 100
func DefaultVolumeTiers() []VolumeTier {
	return []VolumeTier{
		{MinQuantity: 10, ExtraDiscount: decimal.NewFromInt(2)},
		{MinQuantity: 50, ExtraDiscount: decimal.NewFromInt(5)},
		{MinQuantity: 100, ExtraDiscount: decimal.NewFromInt(8)},
	}
}

// GetTiers returns a copy of the volume tiers
func (s *BulkDiscountStrategy) GetTiers() []VolumeTier {
	result := make([]VolumeTier, len(s.tiers))
	copy(result, s.tiers)
	return result
}

// ComputeItemRevenue computes the discounted line total and applies the matching tier
func (s *BulkDiscountStrategy) ComputeItemRevenue(revCtx strategy.RevenueContext) decimal.Decimal {
	revenue := discountedTotal(revCtx.SalePrice, revCtx.Quantity, revCtx.Discount)

	// Tiers are sorted ascending, so the first match from the end is the highest
	for i := len(s.tiers) - 1; i >= 0; i-- {
		if revCtx.Quantity >= s.tiers[i].MinQuantity {
			extra := decimal.NewFromInt(1).Sub(s.tiers[i].ExtraDiscount.Div(hundred))
			return revenue.Mul(extra)
		}
	}
	return revenue
}
