package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/erp/salesperf/internal/domain/report"
)

// JSONExporter writes the report as indented JSON with money as fixed-point numbers
type JSONExporter struct{}

type jsonRow struct {
	Rank        int                      `json:"rank"`
	SellerID    string                   `json:"seller_id"`
	Name        string                   `json:"name"`
	Revenue     json.Number              `json:"revenue"`
	Profit      json.Number              `json:"profit"`
	SalesCount  int64                    `json:"sales_count"`
	TopProducts []report.ProductQuantity `json:"top_products"`
	Bonus       json.Number              `json:"bonus"`
}

type jsonDocument struct {
	Title           string    `json:"title"`
	RunID           string    `json:"run_id,omitempty"`
	GeneratedAt     time.Time `json:"generated_at"`
	RevenueStrategy string    `json:"revenue_strategy,omitempty"`
	BonusStrategy   string    `json:"bonus_strategy,omitempty"`
	Rows            []jsonRow `json:"rows"`
}

// Export implements Exporter
func (JSONExporter) Export(w io.Writer, doc Document) error {
	out := jsonDocument{
		Title:           doc.title(),
		RunID:           doc.RunID,
		GeneratedAt:     doc.GeneratedAt,
		RevenueStrategy: doc.RevenueStrategy,
		BonusStrategy:   doc.BonusStrategy,
		Rows:            make([]jsonRow, len(doc.Rows)),
	}
	for i, row := range doc.Rows {
		topProducts := row.TopProducts
		if topProducts == nil {
			topProducts = []report.ProductQuantity{}
		}
		out.Rows[i] = jsonRow{
			Rank:        i + 1,
			SellerID:    row.SellerID,
			Name:        row.Name,
			Revenue:     json.Number(row.Revenue.StringFixed(2)),
			Profit:      json.Number(row.Profit.StringFixed(2)),
			SalesCount:  row.SalesCount,
			TopProducts: topProducts,
			Bonus:       json.Number(row.Bonus.StringFixed(2)),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}

// ContentType implements Exporter
func (JSONExporter) ContentType() string { return "application/json" }

// Extension implements Exporter
func (JSONExporter) Extension() string { return ".json" }
