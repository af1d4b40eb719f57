package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the XLSX workbook
const (
	ReportSheet      = "report"
	TopProductsSheet = "top_products"
)

var reportHeader = []string{"Rank", "Seller ID", "Name", "Revenue", "Profit", "Sales Count", "Bonus", "Top Products"}

// XLSXExporter writes a workbook with one sheet of rows and one of top products
type XLSXExporter struct{}

// Export implements Exporter
func (XLSXExporter) Export(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return fmt.Errorf("write xlsx report: %w", err)
	}
	if _, err := f.NewSheet(TopProductsSheet); err != nil {
		return fmt.Errorf("write xlsx report: %w", err)
	}

	_ = f.SetCellValue(ReportSheet, "A1", doc.title())
	_ = f.SetCellValue(ReportSheet, "A2", "Run")
	_ = f.SetCellValue(ReportSheet, "B2", doc.RunID)
	_ = f.SetCellValue(ReportSheet, "C2", "Generated")
	_ = f.SetCellValue(ReportSheet, "D2", doc.GeneratedAt.Format(time.RFC3339))

	const headerRow = 4
	for col, title := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, headerRow)
		_ = f.SetCellValue(ReportSheet, cell, title)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(reportHeader), headerRow)
		_ = f.SetCellStyle(ReportSheet, "A4", last, style)
	}
	money, _ := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00

	for i, row := range doc.Rows {
		r := headerRow + 1 + i
		revenue, _ := row.Revenue.Float64()
		profit, _ := row.Profit.Float64()
		bonus, _ := row.Bonus.Float64()
		values := []any{i + 1, row.SellerID, row.Name, revenue, profit, row.SalesCount, bonus, topProductsText(row.TopProducts)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			_ = f.SetCellValue(ReportSheet, cell, v)
		}
		_ = f.SetCellStyle(ReportSheet, fmt.Sprintf("D%d", r), fmt.Sprintf("E%d", r), money)
		_ = f.SetCellStyle(ReportSheet, fmt.Sprintf("G%d", r), fmt.Sprintf("G%d", r), money)
	}

	_ = f.SetCellValue(TopProductsSheet, "A1", "Seller ID")
	_ = f.SetCellValue(TopProductsSheet, "B1", "Position")
	_ = f.SetCellValue(TopProductsSheet, "C1", "SKU")
	_ = f.SetCellValue(TopProductsSheet, "D1", "Quantity")
	line := 2
	for _, row := range doc.Rows {
		for pos, p := range row.TopProducts {
			_ = f.SetCellValue(TopProductsSheet, fmt.Sprintf("A%d", line), row.SellerID)
			_ = f.SetCellValue(TopProductsSheet, fmt.Sprintf("B%d", line), pos+1)
			_ = f.SetCellValue(TopProductsSheet, fmt.Sprintf("C%d", line), p.SKU)
			_ = f.SetCellValue(TopProductsSheet, fmt.Sprintf("D%d", line), p.Quantity)
			line++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx report: %w", err)
	}
	return nil
}

// ContentType implements Exporter
func (XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension implements Exporter
func (XLSXExporter) Extension() string { return ".xlsx" }
