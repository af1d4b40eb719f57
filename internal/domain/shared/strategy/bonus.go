package strategy

import "github.com/shopspring/decimal"

// BonusContext describes a seller at its position in the profit ranking
type BonusContext struct {
	Index      int // 0-based rank, 0 is the highest profit
	Total      int
	SellerID   string
	SellerName string
	Revenue    decimal.Decimal
	Profit     decimal.Decimal
	SalesCount int64
}

// IsTop returns true for the highest ranked seller
func (c BonusContext) IsTop() bool {
	return c.Index == 0
}

// IsBottom returns true for the lowest ranked seller
func (c BonusContext) IsBottom() bool {
	return c.Index == c.Total-1
}

// BonusCalculator computes the bonus owed to a seller given its rank
type BonusCalculator interface {
	ComputeBonus(bonusCtx BonusContext) decimal.Decimal
}

// BonusStrategy is a named, registrable BonusCalculator
type BonusStrategy interface {
	Strategy
	BonusCalculator
}

// BonusFunc adapts a plain function to BonusCalculator
type BonusFunc func(bonusCtx BonusContext) decimal.Decimal

// ComputeBonus calls f
func (f BonusFunc) ComputeBonus(bonusCtx BonusContext) decimal.Decimal {
	return f(bonusCtx)
}
