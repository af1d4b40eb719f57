package dataset

import (
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/erp/salesperf/internal/domain/report"
	"github.com/shopspring/decimal"
)

// ErrInvalidConfig is returned when a generator config cannot produce a valid dataset
var ErrInvalidConfig = errors.New("invalid generator config")

// GeneratorConfig controls the shape of a synthetic dataset
type GeneratorConfig struct {
	Sellers           int
	Products          int
	Records           int
	MaxItemsPerRecord int
	// DanglingRatio is the share of records and items that reference an unknown seller or sku
	DanglingRatio float64
	// Seed makes generation reproducible; 0 picks a random seed
	Seed uint64
	// Period is the date range receipts are spread over
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// DefaultGeneratorConfig returns a small dataset without dangling references
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Sellers:           5,
		Products:          50,
		Records:           200,
		MaxItemsPerRecord: 5,
		PeriodStart:       time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:         time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Validate checks that cfg can produce a dataset the report accepts
func (cfg GeneratorConfig) Validate() error {
	if cfg.Sellers < 1 || cfg.Products < 1 || cfg.Records < 1 {
		return fmt.Errorf("%w: sellers, products and records must be positive", ErrInvalidConfig)
	}
	if cfg.MaxItemsPerRecord < 1 {
		return fmt.Errorf("%w: max items per record must be positive", ErrInvalidConfig)
	}
	if cfg.DanglingRatio < 0 || cfg.DanglingRatio > 1 {
		return fmt.Errorf("%w: dangling ratio must be between 0 and 1", ErrInvalidConfig)
	}
	if cfg.PeriodEnd.Before(cfg.PeriodStart) {
		return fmt.Errorf("%w: period end is before period start", ErrInvalidConfig)
	}
	return nil
}

// Generator produces synthetic sales datasets
type Generator struct {
	faker  *gofakeit.Faker
	config GeneratorConfig
}

// NewGenerator creates a generator for cfg
func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		faker:  gofakeit.New(cfg.Seed),
		config: cfg,
	}, nil
}

var discounts = []int{0, 0, 0, 5, 10, 15, 20}

// Generate builds a complete dataset
func (g *Generator) Generate() *report.SalesData {
	sellers := g.sellers()
	products := g.products()
	return &report.SalesData{
		Sellers:         sellers,
		Products:        products,
		PurchaseRecords: g.records(sellers, products),
	}
}

func (g *Generator) sellers() []report.Seller {
	f := g.faker
	sellers := make([]report.Seller, g.config.Sellers)
	for i := range sellers {
		start := f.DateRange(g.config.PeriodStart.AddDate(-5, 0, 0), g.config.PeriodStart)
		sellers[i] = report.Seller{
			ID:        fmt.Sprintf("seller_%d", i+1),
			FirstName: f.FirstName(),
			LastName:  f.LastName(),
			StartDate: start.Format(time.DateOnly),
			Position:  f.JobTitle(),
		}
	}
	return sellers
}

func (g *Generator) products() []report.Product {
	f := g.faker
	products := make([]report.Product, g.config.Products)
	for i := range products {
		purchase := decimal.NewFromFloat(f.Price(1, 500)).Round(2)
		markup := decimal.NewFromFloat(f.Float64Range(1.1, 2.0))
		products[i] = report.Product{
			SKU:           fmt.Sprintf("SKU_%03d", i+1),
			PurchasePrice: purchase,
			Name:          f.ProductName(),
			Category:      f.ProductCategory(),
			SalePrice:     purchase.Mul(markup).Round(2),
		}
	}
	return products
}

func (g *Generator) records(sellers []report.Seller, products []report.Product) []report.PurchaseRecord {
	f := g.faker
	hundred := decimal.NewFromInt(100)
	records := make([]report.PurchaseRecord, g.config.Records)
	for i := range records {
		sellerID := sellers[f.IntRange(0, len(sellers)-1)].ID
		if g.dangling() {
			sellerID = fmt.Sprintf("seller_unknown_%d", i+1)
		}

		items := make([]report.Item, f.IntRange(1, g.config.MaxItemsPerRecord))
		total := decimal.Zero
		for j := range items {
			product := products[f.IntRange(0, len(products)-1)]
			sku := product.SKU
			if g.dangling() {
				sku = fmt.Sprintf("SKU_UNKNOWN_%d_%d", i+1, j+1)
			}
			item := report.Item{
				SKU:       sku,
				Quantity:  int64(f.IntRange(1, 20)),
				SalePrice: product.SalePrice,
				Discount:  decimal.NewFromInt(int64(discounts[f.IntRange(0, len(discounts)-1)])),
			}
			line := item.SalePrice.Mul(decimal.NewFromInt(item.Quantity)).
				Mul(hundred.Sub(item.Discount)).Div(hundred)
			total = total.Add(line)
			items[j] = item
		}

		records[i] = report.PurchaseRecord{
			ReceiptID:   fmt.Sprintf("receipt_%d", i+1),
			Date:        f.DateRange(g.config.PeriodStart, g.config.PeriodEnd).Format(time.DateOnly),
			SellerID:    sellerID,
			CustomerID:  fmt.Sprintf("customer_%d", f.IntRange(1, 100)),
			TotalAmount: total.Round(2),
			Items:       items,
		}
	}
	return records
}

func (g *Generator) dangling() bool {
	if g.config.DanglingRatio <= 0 {
		return false
	}
	return g.faker.Float64() < g.config.DanglingRatio
}
