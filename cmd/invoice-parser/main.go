package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/docufin/invoice-parser/constants"
	"github.com/docufin/invoice-parser/internal/batch"
	"github.com/docufin/invoice-parser/internal/common"
	"github.com/docufin/invoice-parser/internal/format"
	"github.com/docufin/invoice-parser/internal/parser"
	"github.com/docufin/invoice-parser/internal/store"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(msgFormat string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, msgFormat, args...); err != nil {
		fmt.Printf(msgFormat, args...)
	}
}

func main() {
	var (
		input     = flag.String("input", "", "input invoice file or directory (required)")
		output    = flag.String("output", "output", "output file (single input) or directory (directory input)")
		outFormat = flag.String("format", "json", "output format: json, csv, xlsx, or both")
		verbose   = flag.Bool("verbose", false, "print extracted fields to the console")
	)
	flag.Parse()

	if *input == "" {
		printError("Error: -input is required\n")
		flag.Usage()
		os.Exit(1)
	}
	if !format.IsSupported(*outFormat) {
		printError("Error: unsupported output format %q: use json, csv, xlsx, or both\n", *outFormat)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	// Structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	// Archiving is opt-in via ARCHIVE_DB_URL.
	var archive *store.Store
	if cfg.Archive.DSN != "" {
		st, err := store.Open(ctx, cfg.Archive, logger)
		if err != nil {
			logger.Error("failed to open archive store", "error", err)
			os.Exit(1)
		}
		defer func() {
			_ = st.Close()
		}()
		archive = st
	}

	p := parser.New(logger)

	info, err := os.Stat(*input)
	if err != nil {
		printError("Error: cannot read input: %v\n", err)
		os.Exit(1)
	}

	if info.IsDir() {
		runDirectory(ctx, p, archive, cfg, *input, *output, *outFormat)
		return
	}
	runSingle(ctx, p, archive, *input, *output, *outFormat, *verbose)
}

func runSingle(ctx context.Context, p *parser.Parser, archive *store.Store, input, output, outFormat string, verbose bool) {
	fmt.Printf("Processing file: %s\n", input)

	rec, err := p.Parse(input)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		fmt.Println("\n=== Extracted Data ===")
		fmt.Printf("Invoice Number: %s\n", rec.InvoiceNumber)
		fmt.Printf("Date: %s\n", rec.InvoiceDate)
		fmt.Printf("Vendor: %s\n", rec.VendorName)
		fmt.Printf("Subtotal: $%.2f\n", rec.Subtotal)
		fmt.Printf("Tax: $%.2f\n", rec.TaxAmount)
		fmt.Printf("Total: $%.2f\n", rec.TotalAmount)
		fmt.Printf("Line Items: %d\n", len(rec.Items))
		valid := "No"
		if rec.IsValid() {
			valid = "Yes"
		}
		fmt.Printf("Valid: %s\n", valid)
		if b, err := format.JSONBytes(rec); err == nil {
			if err := format.ValidateJSON(b); err != nil {
				fmt.Printf("Schema check: %v\n", err)
			} else {
				fmt.Println("Schema check: OK")
			}
		}
		fmt.Println()
	}

	written, err := format.Write(rec, output, outFormat)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if archive != nil {
		if _, err := archive.SaveInvoice(ctx, input, rec); err != nil {
			slog.Warn("archive failed", "path", input, "error", err)
		}
	}
	fmt.Printf("✓ Successfully saved to: %s\n", strings.Join(written, ", "))
}

func runDirectory(ctx context.Context, p *parser.Parser, archive *store.Store, cfg *common.Config, input, output, outFormat string) {
	fmt.Printf("Processing directory: %s\n", input)

	opts := []batch.Option{
		batch.WithWorkers(cfg.Batch.Workers),
		batch.WithProcessTimeout(cfg.Batch.ProcessTimeout),
	}
	if archive != nil {
		opts = append(opts, batch.WithArchive(archive))
	}
	runner := batch.NewRunner(p, output, outFormat, slog.Default(), opts...)

	results, stats, err := runner.Run(ctx, input)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	for _, res := range results {
		if res.Status == constants.JobStatusOK {
			fmt.Printf("✓ Successfully processed: %s\n", res.Path)
		} else {
			printError("✗ Failed to process: %s\n  Error: %s\n", res.Path, res.Err)
		}
	}
	fmt.Println("\n=== Summary ===")
	fmt.Printf("Successful: %d\n", stats.Succeeded)
	fmt.Printf("Failed: %d\n", stats.Failed)

	if stats.Matched > 0 && stats.Succeeded == 0 {
		os.Exit(1)
	}
}
