// Package router dispatches a file path to the extractor owning its
// extension and guarantees every caller receives the uniform payload
// contract, whatever happens inside the extractor.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/maini-dms/demand-importer/constants"
	"github.com/maini-dms/demand-importer/internal/common"
	"github.com/maini-dms/demand-importer/internal/excel"
	"github.com/maini-dms/demand-importer/internal/extract"
	"github.com/maini-dms/demand-importer/internal/flatfile"
	"github.com/maini-dms/demand-importer/internal/pdf"
	"github.com/maini-dms/demand-importer/internal/word"
)

type Router struct {
	excel  extract.Extractor
	csv    extract.Extractor
	txt    extract.Extractor
	word   extract.Extractor
	pdf    extract.Extractor
	logger *slog.Logger
}

func New(cfg *common.Config, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		excel:  excel.NewImporter(cfg.Excel, logger),
		csv:    flatfile.NewCSVImporter(logger),
		txt:    flatfile.NewTextImporter(logger),
		word:   word.NewImporter(logger),
		pdf:    pdf.NewImporter(cfg.OCR, cfg.PDF, logger),
		logger: logger,
	}
}

// NewWithExtractors wires explicit extractors; used by tests.
func NewWithExtractors(xl, csv, txt, wd, pd extract.Extractor, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{excel: xl, csv: csv, txt: txt, word: wd, pdf: pd, logger: logger}
}

// Dispatch selects exactly one extractor by extension (case-insensitive)
// and normalizes its result. An unsupported extension is a declared
// error; any extractor-internal failure is logged and converted into an
// empty payload so batch processing continues.
func (r *Router) Dispatch(ctx context.Context, path string) (extract.Payload, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	r.logger.Info("routing file", "path", path, "ext", ext)

	var ex extract.Extractor
	switch constants.MapExtToFormat(ext) {
	case constants.Excel:
		ex = r.excel
	case constants.CSV:
		ex = r.csv
	case constants.TXT:
		ex = r.txt
	case constants.Word:
		ex = r.word
	case constants.PDF:
		ex = r.pdf
	default:
		return extract.EmptyPayload(), fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}

	p, err := ex.Parse(ctx, path)
	if err != nil {
		r.logger.Error("extraction failed", "path", path, "ext", ext, "error", err)
		return extract.EmptyPayload(), nil
	}
	if p.Rows == nil {
		p.Rows = []map[string]any{}
	}
	if p.RawStructured == nil {
		p.RawStructured = map[string]any{}
	}
	return p, nil
}
