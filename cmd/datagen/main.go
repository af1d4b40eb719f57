// Package main provides the CLI that generates synthetic sales datasets.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erp/salesperf/internal/infrastructure/dataset"
)

const dateLayout = "2006-01-02"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := dataset.DefaultGeneratorConfig()
	var (
		output string
		format string
		from   string
		to     string
	)

	fs := flag.NewFlagSet("datagen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.Sellers, "sellers", cfg.Sellers, "Number of sellers")
	fs.IntVar(&cfg.Products, "products", cfg.Products, "Number of products")
	fs.IntVar(&cfg.Records, "records", cfg.Records, "Number of purchase records")
	fs.IntVar(&cfg.MaxItemsPerRecord, "max-items", cfg.MaxItemsPerRecord, "Maximum items per record")
	fs.Float64Var(&cfg.DanglingRatio, "dangling", cfg.DanglingRatio, "Share of records and items referencing unknown sellers or skus (0-1)")
	fs.Uint64Var(&cfg.Seed, "seed", 0, "Random seed; 0 picks a random one")
	fs.StringVar(&from, "from", cfg.PeriodStart.Format(dateLayout), "First receipt date (YYYY-MM-DD)")
	fs.StringVar(&to, "to", cfg.PeriodEnd.Format(dateLayout), "Last receipt date (YYYY-MM-DD)")
	fs.StringVar(&output, "output", "", "Write to this file; the extension selects the format")
	fs.StringVar(&output, "o", "", "Output file (shorthand)")
	fs.StringVar(&format, "format", string(dataset.FormatJSON), "Format when writing to stdout: json or yaml")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	var err error
	if cfg.PeriodStart, err = time.Parse(dateLayout, from); err != nil {
		fmt.Fprintf(stderr, "Error: invalid -from: %v\n", err)
		return 2
	}
	if cfg.PeriodEnd, err = time.Parse(dateLayout, to); err != nil {
		fmt.Fprintf(stderr, "Error: invalid -to: %v\n", err)
		return 2
	}

	gen, err := dataset.NewGenerator(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	data := gen.Generate()

	if output != "" {
		if err := dataset.WriteFile(output, data); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stderr, "Wrote %d sellers, %d products, %d records to %s\n",
			len(data.Sellers), len(data.Products), len(data.PurchaseRecords), output)
		return 0
	}

	f, err := dataset.ParseFormat(format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if err := dataset.Encode(stdout, data, f); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
