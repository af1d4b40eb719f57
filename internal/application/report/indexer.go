package report

import (
	"fmt"

	"github.com/erp/salesperf/internal/domain/report"
)

// sellerIndex keeps stats in seller input order next to an id lookup
type sellerIndex struct {
	stats []*report.SellerStat
	byID  map[string]*report.SellerStat
}

func buildSellerIndex(sellers []report.Seller) (*sellerIndex, error) {
	idx := &sellerIndex{
		stats: make([]*report.SellerStat, 0, len(sellers)),
		byID:  make(map[string]*report.SellerStat, len(sellers)),
	}
	for i, seller := range sellers {
		if seller.ID == "" {
			return nil, fmt.Errorf("%w: sellers[%d] has no id", report.ErrInvalidData, i)
		}
		stat := report.NewSellerStat(seller)
		idx.stats = append(idx.stats, stat)
		// Duplicate ids: the last seller receives the purchase records
		idx.byID[seller.ID] = stat
	}
	return idx, nil
}

func buildProductIndex(products []report.Product) (map[string]report.Product, error) {
	idx := make(map[string]report.Product, len(products))
	for i, product := range products {
		if product.SKU == "" {
			return nil, fmt.Errorf("%w: products[%d] has no sku", report.ErrInvalidData, i)
		}
		idx[product.SKU] = product
	}
	return idx, nil
}
