package flatfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/maini-dms/demand-importer/internal/extract"
	"github.com/maini-dms/demand-importer/internal/tabular"
)

type TextImporter struct {
	logger *slog.Logger
}

func NewTextImporter(logger *slog.Logger) *TextImporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextImporter{logger: logger}
}

// Parse reads a TXT file. When a delimiter is detected (comma first,
// then tab, on a majority of non-empty lines) the file parses as a
// table; otherwise the content is kept as free text with an empty row
// set, which is not an error.
func (im *TextImporter) Parse(ctx context.Context, path string) (extract.Payload, error) {
	im.logger.Info("parsing txt file", "path", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return extract.EmptyPayload(), fmt.Errorf("read txt: %w", err)
	}
	text := string(raw)

	delimiter := detectDelimiter(text)

	if delimiter != 0 {
		r := csv.NewReader(strings.NewReader(text))
		r.Comma = delimiter
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		records, err := r.ReadAll()
		if err == nil && len(records) > 1 {
			table := tabular.Normalize(records[0], recordsToRows(records[1:]))
			return extract.Payload{
				RawText: text,
				RawStructured: map[string]any{
					"tables": []tabular.RawTable{table},
				},
				Rows: tabular.FlattenRows([]tabular.RawTable{table}),
			}, nil
		}
		im.logger.Warn("txt table parse failed, falling back to raw text", "path", path, "error", err)
	}

	im.logger.Info("txt file has no detectable table; stored as raw text", "path", path)
	return extract.Payload{
		RawText:       text,
		RawStructured: map[string]any{},
		Rows:          []map[string]any{},
	}, nil
}

// detectDelimiter picks comma over tab, but only when the candidate
// appears on a strict majority of non-empty lines. A stray comma in
// prose must not turn a note into a two-column table.
func detectDelimiter(text string) rune {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) == 0 {
		return 0
	}
	need := len(lines)/2 + 1
	for _, d := range []rune{',', '\t'} {
		hits := 0
		for _, ln := range lines {
			if strings.ContainsRune(ln, d) {
				hits++
			}
		}
		if hits >= need {
			return d
		}
	}
	return 0
}
