// Package excel extracts demand tables from spreadsheets. A sheet may
// carry several stacked sections separated by header-like marker rows;
// each section becomes one normalized table.
package excel

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/maini-dms/demand-importer/constants"
	"github.com/maini-dms/demand-importer/internal/common"
	"github.com/maini-dms/demand-importer/internal/extract"
	"github.com/maini-dms/demand-importer/internal/tabular"
)

// sectionMarkers split a sheet into logical tables. A row whose
// concatenated text contains any of these starts a new section.
var sectionMarkers = []string{"SERVICES", "MATERIALS", "PURCHASE", "TOTAL", "ORDER"}

type Importer struct {
	cfg    common.ExcelConfig
	runner common.Runner
	logger *slog.Logger
}

func NewImporter(cfg common.ExcelConfig, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{cfg: cfg, runner: common.ExecRunner{}, logger: logger}
}

// Parse reads the first sheet, splits it into marker-bounded sections,
// normalizes each, and flattens all section rows into the payload.
// Legacy .xls input is converted to .xlsx through the configured
// converter before reading.
func (im *Importer) Parse(ctx context.Context, path string) (extract.Payload, error) {
	im.logger.Info("parsing spreadsheet", "path", path)

	if constants.NormalizeExt(filepath.Ext(path)) == "xls" {
		converted, cleanup, err := im.convertLegacy(ctx, path)
		if err != nil {
			return extract.EmptyPayload(), fmt.Errorf("convert xls: %w", err)
		}
		defer cleanup()
		path = converted
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return extract.EmptyPayload(), fmt.Errorf("open spreadsheet: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			im.logger.Warn("close spreadsheet", "path", path, "error", cerr)
		}
	}()

	sheet := f.GetSheetName(0)
	grid, err := f.GetRows(sheet)
	if err != nil {
		return extract.EmptyPayload(), fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	grid = dropEmptyRows(grid)
	if len(grid) == 0 {
		return extract.Payload{
			RawStructured: map[string]any{"tables": []tabular.RawTable{}},
			Rows:          []map[string]any{},
		}, nil
	}

	header := grid[0]
	tables := splitSections(header, grid[1:])

	p := extract.Payload{
		RawStructured: map[string]any{"tables": tables},
		Rows:          tabular.FlattenRows(tables),
	}
	im.logger.Info("spreadsheet parsed", "path", path, "sections", len(tables), "rows", len(p.Rows))
	return p, nil
}

// splitSections scans data rows top to bottom. Marker rows bound
// sections; empty rows are skipped without closing the current section.
func splitSections(header []string, rows [][]string) []tabular.RawTable {
	type section struct {
		name string
		rows [][]any
	}
	var sections []section
	current := section{}

	for _, row := range rows {
		rowStr := joinRow(row)
		if rowStr == "" {
			continue
		}
		if isMarkerRow(rowStr) && len(current.rows) > 0 {
			sections = append(sections, current)
			name := rowStr
			if len(name) > 50 {
				name = name[:50]
			}
			current = section{name: name}
			continue
		}
		if current.name == "" {
			current.name = "Data"
		}
		current.rows = append(current.rows, toAnyRow(row))
	}
	if len(current.rows) > 0 {
		sections = append(sections, current)
	}

	tables := make([]tabular.RawTable, 0, len(sections))
	for _, s := range sections {
		t := tabular.Normalize(header, s.rows)
		t.Section = s.name
		tables = append(tables, t)
	}
	return tables
}

func isMarkerRow(rowStr string) bool {
	for _, kw := range sectionMarkers {
		if strings.Contains(rowStr, kw) {
			return true
		}
	}
	return false
}

func joinRow(row []string) string {
	parts := make([]string, 0, len(row))
	for _, cell := range row {
		if s := strings.TrimSpace(cell); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func dropEmptyRows(grid [][]string) [][]string {
	out := make([][]string, 0, len(grid))
	for _, row := range grid {
		if joinRow(row) != "" {
			out = append(out, row)
		}
	}
	return out
}

func toAnyRow(row []string) []any {
	out := make([]any, len(row))
	for i, cell := range row {
		out[i] = cell
	}
	return out
}
