package report

import "fmt"

// WarningKind classifies a skipped reference
type WarningKind string

const (
	WarningUnknownSeller  WarningKind = "unknown_seller"
	WarningUnknownProduct WarningKind = "unknown_product"
)

// Warning describes a purchase record or item that was skipped
type Warning struct {
	Kind        WarningKind `json:"kind"`
	RecordIndex int         `json:"record_index"`
	ItemIndex   int         `json:"item_index"` // -1 when the whole record was skipped
	SellerID    string      `json:"seller_id,omitempty"`
	SKU         string      `json:"sku,omitempty"`
}

// Message returns a human-readable description of the warning
func (w Warning) Message() string {
	switch w.Kind {
	case WarningUnknownSeller:
		return fmt.Sprintf("seller with id %s not found", w.SellerID)
	case WarningUnknownProduct:
		return fmt.Sprintf("product with sku %s not found", w.SKU)
	default:
		return string(w.Kind)
	}
}

// WarningSink receives skip diagnostics emitted during aggregation
type WarningSink interface {
	Warn(w Warning)
}

type nopSink struct{}

func (nopSink) Warn(Warning) {}

// NopSink returns a sink that discards every warning
func NopSink() WarningSink {
	return nopSink{}
}

// WarningCollector keeps warnings in memory in emission order
type WarningCollector struct {
	warnings []Warning
}

// NewWarningCollector creates an empty collector
func NewWarningCollector() *WarningCollector {
	return &WarningCollector{}
}

// Warn records w
func (c *WarningCollector) Warn(w Warning) {
	c.warnings = append(c.warnings, w)
}

// Warnings returns a copy of the collected warnings
func (c *WarningCollector) Warnings() []Warning {
	result := make([]Warning, len(c.warnings))
	copy(result, c.warnings)
	return result
}

// Count returns how many warnings of kind were collected
func (c *WarningCollector) Count(kind WarningKind) int {
	n := 0
	for _, w := range c.warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// MultiSink fans a warning out to several sinks
type MultiSink []WarningSink

// Warn forwards w to every non-nil sink
func (m MultiSink) Warn(w Warning) {
	for _, s := range m {
		if s != nil {
			s.Warn(w)
		}
	}
}
