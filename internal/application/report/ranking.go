package report

import (
	"sort"

	"github.com/erp/salesperf/internal/domain/report"
	"github.com/erp/salesperf/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
)

// moneyPlaces is the precision of every monetary value in a report row
const moneyPlaces = 2

// rankSellers orders stats by profit descending; equal profits keep input order
func rankSellers(stats []*report.SellerStat) []*report.SellerStat {
	ranked := make([]*report.SellerStat, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Profit.GreaterThan(ranked[j].Profit)
	})
	return ranked
}

// assignBonuses calls calc once per seller, in ranked order
func assignBonuses(ranked []*report.SellerStat, calc strategy.BonusCalculator) []decimal.Decimal {
	total := len(ranked)
	bonuses := make([]decimal.Decimal, total)
	for i, stat := range ranked {
		bonuses[i] = calc.ComputeBonus(strategy.BonusContext{
			Index:      i,
			Total:      total,
			SellerID:   stat.ID,
			SellerName: stat.Name,
			Revenue:    stat.Revenue,
			Profit:     stat.Profit,
			SalesCount: stat.SalesCount,
		})
	}
	return bonuses
}

// topProducts returns at most limit entries by quantity descending.
// Equal quantities keep the order in which the seller first sold them.
func topProducts(tally *report.ProductTally, limit int) []report.ProductQuantity {
	if limit <= 0 {
		limit = report.DefaultTopProductsLimit
	}
	entries := tally.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Quantity > entries[j].Quantity
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// projectRows freezes ranked stats into report rows
func projectRows(ranked []*report.SellerStat, bonuses []decimal.Decimal, topLimit int) []report.ReportRow {
	rows := make([]report.ReportRow, len(ranked))
	for i, stat := range ranked {
		rows[i] = report.ReportRow{
			SellerID:    stat.ID,
			Name:        stat.Name,
			Revenue:     roundMoney(stat.Revenue),
			Profit:      roundMoney(stat.Profit),
			SalesCount:  stat.SalesCount,
			TopProducts: topProducts(stat.ProductsSold, topLimit),
			Bonus:       roundMoney(bonuses[i]),
		}
	}
	return rows
}

// roundMoney rounds half away from zero
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}
