package report

import (
	"time"

	"github.com/erp/salesperf/internal/domain/report"
	"github.com/shopspring/decimal"
)

// SellerPerformanceRowResponse is a report row with money as plain numbers
type SellerPerformanceRowResponse struct {
	Rank        int                      `json:"rank"`
	SellerID    string                   `json:"seller_id"`
	Name        string                   `json:"name"`
	Revenue     float64                  `json:"revenue"`
	Profit      float64                  `json:"profit"`
	SalesCount  int64                    `json:"sales_count"`
	TopProducts []report.ProductQuantity `json:"top_products"`
	Bonus       float64                  `json:"bonus"`
}

// WarningResponse is a skipped record or item
type WarningResponse struct {
	Kind        string `json:"kind"`
	Message     string `json:"message"`
	RecordIndex int    `json:"record_index"`
	ItemIndex   *int   `json:"item_index,omitempty"`
	SellerID    string `json:"seller_id,omitempty"`
	SKU         string `json:"sku,omitempty"`
}

// SummaryResponse is the run summary with money as plain numbers
type SummaryResponse struct {
	RunID            string    `json:"run_id"`
	GeneratedAt      time.Time `json:"generated_at"`
	RevenueStrategy  string    `json:"revenue_strategy"`
	BonusStrategy    string    `json:"bonus_strategy"`
	Sellers          int       `json:"sellers"`
	RecordsProcessed int       `json:"records_processed"`
	RecordsSkipped   int       `json:"records_skipped"`
	ItemsProcessed   int       `json:"items_processed"`
	ItemsSkipped     int       `json:"items_skipped"`
	TotalRevenue     float64   `json:"total_revenue"`
	TotalProfit      float64   `json:"total_profit"`
	TotalBonus       float64   `json:"total_bonus"`
}

// SellerPerformanceResponse is the serialized form of a SellerPerformanceResult
type SellerPerformanceResponse struct {
	Rows     []SellerPerformanceRowResponse `json:"rows"`
	Warnings []WarningResponse              `json:"warnings"`
	Summary  SummaryResponse                `json:"summary"`
}

// ToResponse converts the result for JSON output
func (r *SellerPerformanceResult) ToResponse() SellerPerformanceResponse {
	rows := make([]SellerPerformanceRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = ToRowResponse(i+1, row)
	}

	warnings := make([]WarningResponse, len(r.Warnings))
	for i, w := range r.Warnings {
		warnings[i] = WarningResponse{
			Kind:        string(w.Kind),
			Message:     w.Message(),
			RecordIndex: w.RecordIndex,
			SellerID:    w.SellerID,
			SKU:         w.SKU,
		}
		if w.ItemIndex >= 0 {
			itemIndex := w.ItemIndex
			warnings[i].ItemIndex = &itemIndex
		}
	}

	s := r.Summary
	return SellerPerformanceResponse{
		Rows:     rows,
		Warnings: warnings,
		Summary: SummaryResponse{
			RunID:            s.RunID,
			GeneratedAt:      s.GeneratedAt,
			RevenueStrategy:  s.RevenueStrategy,
			BonusStrategy:    s.BonusStrategy,
			Sellers:          s.Sellers,
			RecordsProcessed: s.RecordsProcessed,
			RecordsSkipped:   s.RecordsSkipped,
			ItemsProcessed:   s.ItemsProcessed,
			ItemsSkipped:     s.ItemsSkipped,
			TotalRevenue:     toFloat64(s.TotalRevenue),
			TotalProfit:      toFloat64(s.TotalProfit),
			TotalBonus:       toFloat64(s.TotalBonus),
		},
	}
}

// ToRowResponse converts a report row; rank is 1-based
func ToRowResponse(rank int, row report.ReportRow) SellerPerformanceRowResponse {
	topProducts := row.TopProducts
	if topProducts == nil {
		topProducts = []report.ProductQuantity{}
	}
	return SellerPerformanceRowResponse{
		Rank:        rank,
		SellerID:    row.SellerID,
		Name:        row.Name,
		Revenue:     toFloat64(row.Revenue),
		Profit:      toFloat64(row.Profit),
		SalesCount:  row.SalesCount,
		TopProducts: topProducts,
		Bonus:       toFloat64(row.Bonus),
	}
}

// StrategyResponse describes a registered strategy
type StrategyResponse struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
