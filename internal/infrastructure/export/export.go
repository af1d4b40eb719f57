// Package export renders finished seller performance reports as files.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/erp/salesperf/internal/domain/report"
)

// Format is an output format of a rendered report
type Format string

const (
	FormatJSON  Format = "json"
	FormatXLSX  Format = "xlsx"
	FormatPDF   Format = "pdf"
	FormatTable Format = "table"
)

// ErrUnsupportedFormat is returned for unknown format names
var ErrUnsupportedFormat = errors.New("unsupported export format")

// DefaultTitle is used when a Document has no title
const DefaultTitle = "Seller Performance Report"

// Document is a report ready for rendering
type Document struct {
	Title           string
	RunID           string
	GeneratedAt     time.Time
	RevenueStrategy string
	BonusStrategy   string
	Rows            []report.ReportRow
}

func (d Document) title() string {
	if d.Title == "" {
		return DefaultTitle
	}
	return d.Title
}

// Exporter renders a Document into w
type Exporter interface {
	Export(w io.Writer, doc Document) error
	ContentType() string
	Extension() string
}

// ParseFormat converts a format name into a Format
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatXLSX, FormatPDF, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// NewExporter returns the exporter for format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return JSONExporter{}, nil
	case FormatXLSX:
		return XLSXExporter{}, nil
	case FormatPDF:
		return PDFExporter{}, nil
	case FormatTable:
		return TableExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SupportedFormats lists every format NewExporter accepts
func SupportedFormats() []Format {
	return []Format{FormatJSON, FormatXLSX, FormatPDF, FormatTable}
}

// topProductsText renders top products as "SKU_001 x12, SKU_002 x3"
func topProductsText(products []report.ProductQuantity) string {
	parts := make([]string, len(products))
	for i, p := range products {
		parts[i] = fmt.Sprintf("%s x%d", p.SKU, p.Quantity)
	}
	return strings.Join(parts, ", ")
}
