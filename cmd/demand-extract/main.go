package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/maini-dms/demand-importer/internal/common"
	"github.com/maini-dms/demand-importer/internal/extract"
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
		file    = flag.String("file", "", "path to the document to process (required)")
		records = flag.Bool("records", true, "include reconciled canonical records in the output")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *file == "" {
		printError("Error: --file is required\n")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	proc := pipeline.NewProcessor(logger, router.New(cfg, logger), reconcile.NewMapper(nil, logger))

	res, err := proc.ProcessFile(context.Background(), *file)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	out := map[string]any{
		"file_id": res.FileID,
		"path":    res.Path,
		"outcome": res.Outcome,
		"payload": map[string]any{
			"raw_text":       res.Payload.RawText,
			"raw_structured": extract.JSONSafe(res.Payload.RawStructured),
			"rows":           extract.JSONSafe(res.Payload.Rows),
		},
	}
	if *records {
		out["records"] = res.Records
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		printError("Error: encode output: %v\n", err)
		os.Exit(1)
	}
}
