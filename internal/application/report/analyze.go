package report

import (
	"github.com/erp/salesperf/internal/domain/report"
	"github.com/erp/salesperf/internal/domain/shared/strategy"
)

// Options carries the strategies a report run is computed with
type Options struct {
	Revenue strategy.RevenueCalculator
	Bonus   strategy.BonusCalculator
	// Warnings receives unknown seller and product diagnostics; nil discards them
	Warnings report.WarningSink
	// TopProductsLimit caps each row's top products; <= 0 means report.DefaultTopProductsLimit
	TopProductsLimit int
}

// Analyze builds the seller performance report: rows ordered by profit descending
// with bonus and top products filled in.
//
// It fails with report.ErrInvalidData or report.ErrInvalidOptions before doing any
// work. Purchase records of unknown sellers and items of unknown products are
// skipped and reported to opts.Warnings.
func Analyze(data *report.SalesData, opts *Options) ([]report.ReportRow, error) {
	rows, _, err := analyze(data, opts)
	return rows, err
}

func analyze(data *report.SalesData, opts *Options) ([]report.ReportRow, AggregationStats, error) {
	if err := validateInput(data, opts); err != nil {
		return nil, AggregationStats{}, err
	}

	sellers, err := buildSellerIndex(data.Sellers)
	if err != nil {
		return nil, AggregationStats{}, err
	}
	products, err := buildProductIndex(data.Products)
	if err != nil {
		return nil, AggregationStats{}, err
	}

	agg := newAggregator(sellers.byID, products, opts.Revenue, opts.Warnings)
	stats := agg.run(data.PurchaseRecords)

	ranked := rankSellers(sellers.stats)
	bonuses := assignBonuses(ranked, opts.Bonus)
	return projectRows(ranked, bonuses, opts.TopProductsLimit), stats, nil
}
