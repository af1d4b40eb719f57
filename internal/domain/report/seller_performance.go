package report

import (
	"github.com/erp/salesperf/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultTopProductsLimit is how many products a report row lists when no limit is configured
const DefaultTopProductsLimit = 10

// Errors that abort a report run before any aggregation happens
var (
	ErrInvalidData    = shared.NewDomainError("INVALID_DATA", "Invalid sales data")
	ErrInvalidOptions = shared.NewDomainError("INVALID_OPTIONS", "Invalid report options")
)

// Seller is a sales person being ranked and compensated
type Seller struct {
	ID        string `json:"id" yaml:"id"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	StartDate string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	Position  string `json:"position,omitempty" yaml:"position,omitempty"`
}

// FullName joins first and last name with a single space
func (s Seller) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Product is a catalog card; only SKU and PurchasePrice take part in the report
type Product struct {
	SKU           string          `json:"sku" yaml:"sku"`
	PurchasePrice decimal.Decimal `json:"purchase_price" yaml:"purchase_price"`
	Name          string          `json:"name,omitempty" yaml:"name,omitempty"`
	Category      string          `json:"category,omitempty" yaml:"category,omitempty"`
	SalePrice     decimal.Decimal `json:"sale_price,omitempty" yaml:"sale_price,omitempty"`
}

// Item is a single line of a purchase record
type Item struct {
	SKU       string          `json:"sku" yaml:"sku"`
	Quantity  int64           `json:"quantity" yaml:"quantity"`
	SalePrice decimal.Decimal `json:"sale_price" yaml:"sale_price"`
	Discount  decimal.Decimal `json:"discount" yaml:"discount"` // Percentage
}

// PurchaseRecord is one receipt issued by a seller
type PurchaseRecord struct {
	ReceiptID   string          `json:"receipt_id,omitempty" yaml:"receipt_id,omitempty"`
	Date        string          `json:"date,omitempty" yaml:"date,omitempty"`
	SellerID    string          `json:"seller_id" yaml:"seller_id"`
	CustomerID  string          `json:"customer_id,omitempty" yaml:"customer_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount" yaml:"total_amount"`
	Items       []Item          `json:"items" yaml:"items"`
}

// SalesData is the complete input of a seller performance report
type SalesData struct {
	Sellers         []Seller         `json:"sellers" yaml:"sellers" validate:"required,min=1"`
	Products        []Product        `json:"products" yaml:"products" validate:"required,min=1"`
	PurchaseRecords []PurchaseRecord `json:"purchase_records" yaml:"purchase_records" validate:"required,min=1"`
}

// ProductQuantity is one entry of a seller's top products list
type ProductQuantity struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"quantity"`
}

// ProductTally counts sold quantities per SKU and remembers the order
// in which SKUs were first seen
type ProductTally struct {
	quantities map[string]int64
	order      []string
}

// NewProductTally creates an empty tally
func NewProductTally() *ProductTally {
	return &ProductTally{quantities: make(map[string]int64)}
}

// Add increases the quantity sold for sku
func (t *ProductTally) Add(sku string, quantity int64) {
	if _, seen := t.quantities[sku]; !seen {
		t.order = append(t.order, sku)
	}
	t.quantities[sku] += quantity
}

// Quantity returns the cumulative quantity sold for sku
func (t *ProductTally) Quantity(sku string) int64 {
	return t.quantities[sku]
}

// Len returns the number of distinct SKUs sold
func (t *ProductTally) Len() int {
	return len(t.order)
}

// Entries returns all tallied SKUs in first-seen order
func (t *ProductTally) Entries() []ProductQuantity {
	entries := make([]ProductQuantity, len(t.order))
	for i, sku := range t.order {
		entries[i] = ProductQuantity{SKU: sku, Quantity: t.quantities[sku]}
	}
	return entries
}

// SellerStat holds the running totals of one seller during aggregation
type SellerStat struct {
	ID           string
	Name         string
	Revenue      decimal.Decimal
	Profit       decimal.Decimal
	SalesCount   int64
	ProductsSold *ProductTally
}

// NewSellerStat creates a zeroed stat for seller
func NewSellerStat(seller Seller) *SellerStat {
	return &SellerStat{
		ID:           seller.ID,
		Name:         seller.FullName(),
		Revenue:      decimal.Zero,
		Profit:       decimal.Zero,
		ProductsSold: NewProductTally(),
	}
}

// ReportRow is one line of the finished report
type ReportRow struct {
	SellerID    string            `json:"seller_id"`
	Name        string            `json:"name"`
	Revenue     decimal.Decimal   `json:"revenue"`
	Profit      decimal.Decimal   `json:"profit"`
	SalesCount  int64             `json:"sales_count"`
	TopProducts []ProductQuantity `json:"top_products"`
	Bonus       decimal.Decimal   `json:"bonus"`
}
