// Package flatfile extracts rows from delimited text files. CSV input is
// always tabular; TXT input degrades to free text when no delimiter is
// recognizable.
package flatfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"github.com/maini-dms/demand-importer/internal/extract"
	"github.com/maini-dms/demand-importer/internal/tabular"
)

type CSVImporter struct {
	logger *slog.Logger
}

func NewCSVImporter(logger *slog.Logger) *CSVImporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVImporter{logger: logger}
}

// Parse reads a CSV file as one table: first record is the header, the
// rest are data rows.
func (im *CSVImporter) Parse(ctx context.Context, path string) (extract.Payload, error) {
	im.logger.Info("parsing csv file", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return extract.EmptyPayload(), fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return extract.EmptyPayload(), fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return extract.Payload{
			RawStructured: map[string]any{"tables": []tabular.RawTable{}},
			Rows:          []map[string]any{},
		}, nil
	}

	table := tabular.Normalize(records[0], recordsToRows(records[1:]))
	return extract.Payload{
		RawStructured: map[string]any{"tables": []tabular.RawTable{table}},
		Rows:          tabular.FlattenRows([]tabular.RawTable{table}),
	}, nil
}

func recordsToRows(records [][]string) [][]any {
	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(rec))
		for j, cell := range rec {
			row[j] = cell
		}
		rows[i] = row
	}
	return rows
}
