// Package main provides the CLI that builds a seller performance report from a dataset file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	appreport "github.com/erp/salesperf/internal/application/report"
	"github.com/erp/salesperf/internal/domain/report"
	"github.com/erp/salesperf/internal/infrastructure/config"
	"github.com/erp/salesperf/internal/infrastructure/dataset"
	"github.com/erp/salesperf/internal/infrastructure/export"
	"github.com/erp/salesperf/internal/infrastructure/logger"
	infrastrategy "github.com/erp/salesperf/internal/infrastructure/strategy"
	"go.uber.org/zap"
)

// Exit codes
const (
	exitOK       = 0
	exitRejected = 1
	exitUsage    = 2
)

type options struct {
	configPath  string
	input       string
	inputFormat string
	output      string
	format      string
	revenue     string
	bonus       string
	top         int
	quiet       bool
	list        bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("sellerreport", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to a TOML configuration file")
	fs.StringVar(&opts.input, "input", "", "Sales dataset (.json, .yaml); \"-\" reads stdin")
	fs.StringVar(&opts.input, "i", "", "Sales dataset (shorthand)")
	fs.StringVar(&opts.inputFormat, "input-format", "json", "Dataset format when reading stdin: json or yaml")
	fs.StringVar(&opts.output, "output", "", "Write the report to this file instead of stdout")
	fs.StringVar(&opts.output, "o", "", "Output file (shorthand)")
	fs.StringVar(&opts.format, "format", string(export.FormatTable), "Report format: json, xlsx, pdf or table")
	fs.StringVar(&opts.revenue, "revenue", "", "Revenue strategy (default from configuration)")
	fs.StringVar(&opts.bonus, "bonus", "", "Bonus strategy (default from configuration)")
	fs.IntVar(&opts.top, "top", 0, "Top products per seller (default from configuration)")
	fs.BoolVar(&opts.quiet, "quiet", false, "Do not log skipped records and items")
	fs.BoolVar(&opts.list, "list-strategies", false, "List available strategies and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `sellerreport - rank sellers by profit and compute bonuses

USAGE:
    sellerreport -input <file> [options]

EXAMPLES:
    sellerreport -input data.json
    sellerreport -input data.yaml -format xlsx -output report.xlsx
    sellerreport -input data.json -revenue bulk_discount -bonus flat_profit_share
    cat data.json | sellerreport -input - -format json

OPTIONS:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.input == "" && !opts.list {
		fs.Usage()
		return nil, errors.New("-input is required")
	}
	return opts, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	log := logger.NewWithWriter(&logger.Config{Level: cfg.Log.Level, Format: "json"}, stderr)
	if opts.quiet {
		log = zap.NewNop()
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	registry, err := infrastrategy.NewRegistryWithSettings(cfg.Report.StrategySettings())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	service := appreport.NewSellerPerformanceService(registry, log,
		appreport.WithTopProductsLimit(cfg.Report.TopProductsLimit),
		appreport.WithWarningSink(logger.NewWarningSink(log)),
	)

	if opts.list {
		for _, s := range service.ListStrategies() {
			marker := ""
			if s.Default {
				marker = " (default)"
			}
			fmt.Fprintf(stdout, "%-8s %-18s %s%s\n", s.Type, s.Name, s.Description, marker)
		}
		return exitOK
	}

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	exporter, err := export.NewExporter(format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	data, err := readDataset(opts, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRejected
	}

	result, err := service.Generate(context.Background(), data, appreport.GenerateRequest{
		RevenueStrategy:  opts.revenue,
		BonusStrategy:    opts.bonus,
		TopProductsLimit: opts.top,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRejected
	}

	doc := export.Document{
		Title:           export.DefaultTitle,
		RunID:           result.Summary.RunID,
		GeneratedAt:     result.Summary.GeneratedAt,
		RevenueStrategy: result.Summary.RevenueStrategy,
		BonusStrategy:   result.Summary.BonusStrategy,
		Rows:            result.Rows,
	}
	if err := writeReport(opts.output, stdout, exporter, doc); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRejected
	}
	return exitOK
}

func readDataset(opts *options, stdin io.Reader) (*report.SalesData, error) {
	if opts.input != "-" {
		return dataset.LoadFile(opts.input)
	}
	format, err := dataset.ParseFormat(opts.inputFormat)
	if err != nil {
		return nil, err
	}
	return dataset.Decode(stdin, format)
}

func writeReport(path string, stdout io.Writer, exporter export.Exporter, doc export.Document) (err error) {
	if path == "" {
		return exporter.Export(stdout, doc)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return exporter.Export(f, doc)
}
