// Package word extracts tables from .docx documents by reading
// word/document.xml out of the ZIP archive. Each document table maps to
// one normalized table: first row header, remaining rows data.
package word

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maini-dms/demand-importer/internal/common"
	"github.com/maini-dms/demand-importer/internal/extract"
	"github.com/maini-dms/demand-importer/internal/tabular"
)

type Importer struct {
	logger *slog.Logger
}

func NewImporter(logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{logger: logger}
}

// Parse normalizes every table in the document. A document with zero
// tables is an extraction failure: this format has no row-producing
// fallback.
func (im *Importer) Parse(ctx context.Context, path string) (extract.Payload, error) {
	im.logger.Info("parsing word file", "path", path)

	grids, err := readDocumentTables(path)
	if err != nil {
		return extract.EmptyPayload(), err
	}
	if len(grids) == 0 {
		return extract.EmptyPayload(), common.ErrNoTables
	}

	tables := make([]tabular.RawTable, 0, len(grids))
	for _, grid := range grids {
		if len(grid) == 0 {
			continue
		}
		header := grid[0]
		rows := make([][]any, 0, len(grid)-1)
		for _, r := range grid[1:] {
			row := make([]any, len(r))
			for i, cell := range r {
				row[i] = cell
			}
			rows = append(rows, row)
		}
		tables = append(tables, tabular.Normalize(header, rows))
	}

	return extract.Payload{
		RawStructured: map[string]any{"tables": tables},
		Rows:          tabular.FlattenRows(tables),
	}, nil
}

// readDocumentTables walks the WordprocessingML token stream and
// collects every w:tbl as a grid of trimmed cell strings.
func readDocumentTables(path string) ([][][]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var (
		grids       [][][]string
		currentGrid [][]string
		currentRow  []string
		cellText    strings.Builder
		tableDepth  int
		inRow       bool
		inCell      bool
	)

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
				if tableDepth == 1 {
					currentGrid = nil
				}
			case "tr":
				if tableDepth == 1 {
					inRow = true
					currentRow = nil
				}
			case "tc":
				if inRow {
					inCell = true
					cellText.Reset()
				}
			}

		case xml.CharData:
			if inCell {
				cellText.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "tc":
				if inCell {
					inCell = false
					currentRow = append(currentRow, strings.TrimSpace(cellText.String()))
				}
			case "tr":
				if inRow {
					inRow = false
					currentGrid = append(currentGrid, currentRow)
				}
			case "tbl":
				if tableDepth == 1 && len(currentGrid) > 0 {
					grids = append(grids, currentGrid)
				}
				tableDepth--
			}
		}
	}

	return grids, nil
}
