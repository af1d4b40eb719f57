package strategy

import "github.com/shopspring/decimal"

// RevenueContext carries one purchase line together with the product card it references
type RevenueContext struct {
	SKU           string
	Quantity      int64
	SalePrice     decimal.Decimal
	Discount      decimal.Decimal // percent, range is not enforced
	PurchasePrice decimal.Decimal
}

// RevenueCalculator computes the revenue a single purchase line brings in
type RevenueCalculator interface {
	ComputeItemRevenue(revCtx RevenueContext) decimal.Decimal
}

// RevenueStrategy is a named, registrable RevenueCalculator
type RevenueStrategy interface {
	Strategy
	RevenueCalculator
}

// RevenueFunc adapts a plain function to RevenueCalculator
type RevenueFunc func(revCtx RevenueContext) decimal.Decimal

// ComputeItemRevenue calls f
func (f RevenueFunc) ComputeItemRevenue(revCtx RevenueContext) decimal.Decimal {
	return f(revCtx)
}
