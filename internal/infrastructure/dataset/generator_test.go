package dataset

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GeneratorConfig)
	}{
		{"no sellers", func(c *GeneratorConfig) { c.Sellers = 0 }},
		{"no products", func(c *GeneratorConfig) { c.Products = 0 }},
		{"no records", func(c *GeneratorConfig) { c.Records = 0 }},
		{"no items", func(c *GeneratorConfig) { c.MaxItemsPerRecord = 0 }},
		{"negative ratio", func(c *GeneratorConfig) { c.DanglingRatio = -0.1 }},
		{"ratio above one", func(c *GeneratorConfig) { c.DanglingRatio = 1.5 }},
		{"inverted period", func(c *GeneratorConfig) { c.PeriodEnd = c.PeriodStart.AddDate(0, 0, -1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGeneratorConfig()
			tt.mutate(&cfg)
			_, err := NewGenerator(cfg)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestGenerator_Generate(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Seed = 42
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	data := g.Generate()

	require.Len(t, data.Sellers, cfg.Sellers)
	require.Len(t, data.Products, cfg.Products)
	require.Len(t, data.PurchaseRecords, cfg.Records)

	sellers := make(map[string]bool)
	for _, s := range data.Sellers {
		assert.NotEmpty(t, s.FirstName)
		sellers[s.ID] = true
	}
	products := make(map[string]bool)
	for _, p := range data.Products {
		assert.True(t, p.PurchasePrice.IsPositive())
		assert.True(t, p.SalePrice.GreaterThan(p.PurchasePrice))
		products[p.SKU] = true
	}
	for _, r := range data.PurchaseRecords {
		assert.True(t, sellers[r.SellerID], "unknown seller %s", r.SellerID)
		assert.NotEmpty(t, r.Items)
		assert.LessOrEqual(t, len(r.Items), cfg.MaxItemsPerRecord)
		assert.True(t, r.TotalAmount.IsPositive())
		for _, item := range r.Items {
			assert.True(t, products[item.SKU], "unknown sku %s", item.SKU)
			assert.GreaterOrEqual(t, item.Quantity, int64(1))
		}
	}
}

func TestGenerator_SameSeedSameData(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Seed = 7

	a, err := NewGenerator(cfg)
	require.NoError(t, err)
	b, err := NewGenerator(cfg)
	require.NoError(t, err)

	first, second := a.Generate(), b.Generate()
	assert.Equal(t, first.Sellers, second.Sellers)
	require.Len(t, second.PurchaseRecords, len(first.PurchaseRecords))
	for i := range first.PurchaseRecords {
		assert.Equal(t, first.PurchaseRecords[i].SellerID, second.PurchaseRecords[i].SellerID)
		assert.True(t, first.PurchaseRecords[i].TotalAmount.Equal(second.PurchaseRecords[i].TotalAmount))
	}
}

func TestGenerator_DanglingReferences(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Seed = 3
	cfg.DanglingRatio = 1

	g, err := NewGenerator(cfg)
	require.NoError(t, err)
	data := g.Generate()

	for _, r := range data.PurchaseRecords {
		assert.True(t, strings.HasPrefix(r.SellerID, "seller_unknown_"))
		for _, item := range r.Items {
			assert.True(t, strings.HasPrefix(item.SKU, "SKU_UNKNOWN_"))
		}
	}
}
