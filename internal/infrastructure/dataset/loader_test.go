package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonDataset = `{
  "customers": [{"id": "customer_1"}],
  "sellers": [{"id": "seller_1", "first_name": "Alexey", "last_name": "Petrov", "start_date": "2021-05-01", "position": "Senior Seller"}],
  "products": [{"sku": "SKU_001", "purchase_price": 50, "name": "Milk", "category": "Dairy", "sale_price": 100}],
  "purchase_records": [{
    "receipt_id": "receipt_1",
    "date": "2023-12-04",
    "seller_id": "seller_1",
    "customer_id": "customer_1",
    "total_amount": 180,
    "items": [{"sku": "SKU_001", "quantity": 2, "sale_price": 100, "discount": 10}]
  }]
}`

const yamlDataset = `
sellers:
  - id: seller_1
    first_name: Alexey
    last_name: Petrov
products:
  - sku: SKU_001
    purchase_price: 50.25
purchase_records:
  - seller_id: seller_1
    total_amount: "180.10"
    items:
      - sku: SKU_001
        quantity: 2
        sale_price: 100
        discount: 10
`

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{".JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{".yml", FormatYAML, false},
		{"csv", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("/tmp/data.yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFromPath("/tmp/data")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecode_JSON(t *testing.T) {
	data, err := Decode(strings.NewReader(jsonDataset), FormatJSON)
	require.NoError(t, err)

	require.Len(t, data.Sellers, 1)
	assert.Equal(t, "Senior Seller", data.Sellers[0].Position)
	assert.Equal(t, "Dairy", data.Products[0].Category)
	assert.True(t, data.Products[0].PurchasePrice.Equal(decimal.NewFromInt(50)))
	record := data.PurchaseRecords[0]
	assert.Equal(t, "receipt_1", record.ReceiptID)
	assert.True(t, record.TotalAmount.Equal(decimal.NewFromInt(180)))
	assert.Equal(t, int64(2), record.Items[0].Quantity)
}

func TestDecode_YAML(t *testing.T) {
	data, err := Decode(strings.NewReader(yamlDataset), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "Petrov", data.Sellers[0].LastName)
	assert.True(t, data.Products[0].PurchasePrice.Equal(decimal.RequireFromString("50.25")))
	assert.True(t, data.PurchaseRecords[0].TotalAmount.Equal(decimal.RequireFromString("180.10")))
	assert.True(t, data.PurchaseRecords[0].Items[0].Discount.Equal(decimal.NewFromInt(10)))
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"sellers": [`), FormatJSON)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`{}`), Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFileRoundTrip(t *testing.T) {
	original, err := Decode(strings.NewReader(jsonDataset), FormatJSON)
	require.NoError(t, err)

	for _, name := range []string{"data.json", "data.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteFile(path, original))

			loaded, err := LoadFile(path)
			require.NoError(t, err)

			assert.Equal(t, original.Sellers, loaded.Sellers)
			require.Len(t, loaded.PurchaseRecords, 1)
			assert.True(t, loaded.PurchaseRecords[0].TotalAmount.Equal(original.PurchaseRecords[0].TotalAmount))
			assert.True(t, loaded.Products[0].PurchasePrice.Equal(original.Products[0].PurchasePrice))
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	csv := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csv, []byte("a,b"), 0o600))
	_, err = LoadFile(csv)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEncode_JSONIsIndented(t *testing.T) {
	data, err := Decode(strings.NewReader(jsonDataset), FormatJSON)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, data, FormatJSON))
	assert.Contains(t, buf.String(), "\n  \"sellers\"")
}
