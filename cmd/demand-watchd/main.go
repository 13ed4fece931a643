package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/maini-dms/demand-importer/internal/common"
	"github.com/maini-dms/demand-importer/internal/ingest"
	"github.com/maini-dms/demand-importer/internal/pipeline"
	"github.com/maini-dms/demand-importer/internal/reconcile"
	"github.com/maini-dms/demand-importer/internal/router"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir  = flag.String("dir", "", "drop folder to watch (required)")
		out  = flag.String("out", "", "directory for per-file JSON results (defaults to <dir>/processed)")
		scan = flag.Bool("scan", true, "process files already present at startup")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(*dir, "processed")
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		printError("Error: create output dir: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	proc := pipeline.NewProcessor(logger, router.New(cfg, logger), reconcile.NewMapper(nil, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	files, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{*dir},
		InitialScan: *scan,
		Debounce:    cfg.Ingest.Debounce,
	})
	if err != nil {
		printError("Error: start watcher: %v\n", err)
		os.Exit(1)
	}

	logger.Info("watching drop folder", "dir", *dir, "out", *out)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case werr, ok := <-errs:
			if ok {
				logger.Error("watcher error", "error", werr)
			}
		case path, ok := <-files:
			if !ok {
				return
			}
			res, err := proc.ProcessFile(ctx, path)
			if err != nil {
				logger.Error("processing failed", "path", path, "error", err)
				continue
			}
			if err := writeResult(*out, res); err != nil {
				logger.Error("write result failed", "path", path, "error", err)
			}
		}
	}
}

// writeResult persists one file's derivation as <out>/<file_id>.json,
// replacing any prior derivation for the same source file.
func writeResult(outDir string, res pipeline.FileResult) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, res.FileID.String()+".json"), data, 0o644)
}
