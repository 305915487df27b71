// invoice-watchd watches directory roots for new or changed invoice files
// and parses each one as it lands, writing outputs next to a configured
// output directory and optionally archiving records.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/docufin/invoice-parser/internal/common"
	"github.com/docufin/invoice-parser/internal/format"
	"github.com/docufin/invoice-parser/internal/parser"
	"github.com/docufin/invoice-parser/internal/store"
	"github.com/docufin/invoice-parser/internal/watch"
)

func main() {
	var (
		outDir    = flag.String("out", "output", "directory for parsed output files")
		outFormat = flag.String("format", "json", "output format: json, csv, xlsx, or both")
	)
	flag.Parse()
	roots := flag.Args()

	// Structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	if len(roots) == 0 {
		logger.Error("usage: invoice-watchd [-out DIR] [-format FMT] ROOT [ROOT...]")
		os.Exit(1)
	}
	if !format.IsSupported(*outFormat) {
		logger.Error("unsupported output format", "format", *outFormat)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("cannot create output directory", "dir", *outDir, "error", err)
		os.Exit(1)
	}

	p := parser.New(logger)

	evCh, errCh, err := watch.Start(ctx, watch.Config{
		Roots:       roots,
		InitialScan: cfg.Watch.InitialScan,
		Debounce:    cfg.Watch.Debounce,
	}, logger)
	if err != nil {
		logger.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	logger.Info("invoice-watchd watching", "roots", strings.Join(roots, ","), "out", *outDir, "format", *outFormat)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case path, ok := <-evCh:
			if !ok {
				return
			}
			processFile(ctx, p, archive, logger, path, *outDir, *outFormat)
		case werr, ok := <-errCh:
			if !ok {
				return
			}
			logger.Error("watch error", "error", werr)
		}
	}
}

// processFile parses one document. Failures are logged and absorbed; the
// daemon keeps watching.
func processFile(ctx context.Context, p *parser.Parser, archive *store.Store, logger *slog.Logger, path, outDir, outFormat string) {
	rec, err := p.Parse(path)
	if err != nil {
		logger.Error("parse failed", "path", path, "error", err)
		return
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(outDir, base+format.Ext(outFormat))
	written, err := format.Write(rec, outPath, outFormat)
	if err != nil {
		logger.Error("write failed", "path", path, "error", err)
		return
	}
	if archive != nil {
		if _, err := archive.SaveInvoice(ctx, path, rec); err != nil {
			logger.Warn("archive failed", "path", path, "error", err)
		}
	}
	logger.Info("invoice parsed", "path", path, "outputs", fmt.Sprintf("%v", written), "items", len(rec.Items))
}
