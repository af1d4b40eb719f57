package export

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// TableExporter writes an aligned plain text table for terminals
type TableExporter struct{}

// Export implements Exporter
func (TableExporter) Export(w io.Writer, doc Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, doc.title())
	fmt.Fprintln(tw, "RANK\tSELLER\tNAME\tREVENUE\tPROFIT\tSALES\tBONUS\tTOP PRODUCTS")
	for i, row := range doc.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			i+1,
			row.SellerID,
			row.Name,
			row.Revenue.StringFixed(2),
			row.Profit.StringFixed(2),
			row.SalesCount,
			row.Bonus.StringFixed(2),
			topProductsText(row.TopProducts),
		)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table report: %w", err)
	}
	return nil
}

// ContentType implements Exporter
func (TableExporter) ContentType() string { return "text/plain; charset=utf-8" }

// Extension implements Exporter
func (TableExporter) Extension() string { return ".txt" }
