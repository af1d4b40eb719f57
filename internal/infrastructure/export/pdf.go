package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter writes a landscape A4 table
type PDFExporter struct{}

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"#", 10, "C"},
	{"Seller ID", 30, "L"},
	{"Name", 50, "L"},
	{"Revenue", 30, "R"},
	{"Profit", 30, "R"},
	{"Sales", 18, "R"},
	{"Bonus", 25, "R"},
	{"Top Products", 84, "L"},
}

// Export implements Exporter
func (PDFExporter) Export(w io.Writer, doc Document) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, tr(doc.title()))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if doc.RunID != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Run: %s", doc.RunID))
		pdf.Ln(5)
	}
	if !doc.GeneratedAt.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", doc.GeneratedAt.Format(time.RFC3339)))
		pdf.Ln(5)
	}
	if doc.RevenueStrategy != "" || doc.BonusStrategy != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Strategies: %s / %s", doc.RevenueStrategy, doc.BonusStrategy))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 9)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 6, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i, row := range doc.Rows {
		values := []string{
			fmt.Sprintf("%d", i+1),
			tr(row.SellerID),
			tr(row.Name),
			row.Revenue.StringFixed(2),
			row.Profit.StringFixed(2),
			fmt.Sprintf("%d", row.SalesCount),
			row.Bonus.StringFixed(2),
			tr(truncate(topProductsText(row.TopProducts), 60)),
		}
		for c, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, values[c], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf report: %w", err)
	}
	return nil
}

// ContentType implements Exporter
func (PDFExporter) ContentType() string { return "application/pdf" }

// Extension implements Exporter
func (PDFExporter) Extension() string { return ".pdf" }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
