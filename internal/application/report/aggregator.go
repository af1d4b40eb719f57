package report

import (
	"github.com/erp/salesperf/internal/domain/report"
	"github.com/erp/salesperf/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
)

// AggregationStats counts what the aggregator consumed and skipped.
// ItemsSkipped includes every item of a record skipped for an unknown seller,
// so it can exceed the number of unknown_product warnings.
type AggregationStats struct {
	RecordsProcessed int `json:"records_processed"`
	RecordsSkipped   int `json:"records_skipped"`
	ItemsProcessed   int `json:"items_processed"`
	ItemsSkipped     int `json:"items_skipped"`
}

// aggregator owns the seller stats for the duration of a single pass
type aggregator struct {
	sellers  map[string]*report.SellerStat
	products map[string]report.Product
	revenue  strategy.RevenueCalculator
	warnings report.WarningSink
	stats    AggregationStats
}

func newAggregator(
	sellers map[string]*report.SellerStat,
	products map[string]report.Product,
	revenue strategy.RevenueCalculator,
	warnings report.WarningSink,
) *aggregator {
	if warnings == nil {
		warnings = report.NopSink()
	}
	return &aggregator{
		sellers:  sellers,
		products: products,
		revenue:  revenue,
		warnings: warnings,
	}
}

// run walks the records in input order so decimal sums are reproducible
func (a *aggregator) run(records []report.PurchaseRecord) AggregationStats {
	for i := range records {
		a.consume(i, &records[i])
	}
	return a.stats
}

func (a *aggregator) consume(recordIndex int, record *report.PurchaseRecord) {
	seller, ok := a.sellers[record.SellerID]
	if !ok {
		a.stats.RecordsSkipped++
		a.stats.ItemsSkipped += len(record.Items)
		a.warnings.Warn(report.Warning{
			Kind:        report.WarningUnknownSeller,
			RecordIndex: recordIndex,
			ItemIndex:   -1,
			SellerID:    record.SellerID,
		})
		return
	}

	a.stats.RecordsProcessed++
	seller.SalesCount++
	seller.Revenue = seller.Revenue.Add(record.TotalAmount)

	for j, item := range record.Items {
		product, ok := a.products[item.SKU]
		if !ok {
			a.stats.ItemsSkipped++
			a.warnings.Warn(report.Warning{
				Kind:        report.WarningUnknownProduct,
				RecordIndex: recordIndex,
				ItemIndex:   j,
				SellerID:    record.SellerID,
				SKU:         item.SKU,
			})
			continue
		}

		itemRevenue := a.revenue.ComputeItemRevenue(strategy.RevenueContext{
			SKU:           item.SKU,
			Quantity:      item.Quantity,
			SalePrice:     item.SalePrice,
			Discount:      item.Discount,
			PurchasePrice: product.PurchasePrice,
		})
		itemCost := product.PurchasePrice.Mul(decimal.NewFromInt(item.Quantity))

		// Profit is not clamped; a loss-making line lowers it
		seller.Profit = seller.Profit.Add(itemRevenue.Sub(itemCost))
		seller.ProductsSold.Add(item.SKU, item.Quantity)
		a.stats.ItemsProcessed++
	}
}
