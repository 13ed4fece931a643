// Package pdf implements the PDF sub-pipeline: text-layer detection,
// OCR fallback, a four-stage table-extraction fallback chain, and
// regex-based structured line-item extraction.
package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/maini-dms/demand-importer/internal/common"
	"github.com/maini-dms/demand-importer/internal/extract"
	"github.com/maini-dms/demand-importer/internal/tabular"
)

type Importer struct {
	ocrCfg common.OCRConfig
	pdfCfg common.PDFConfig
	runner common.Runner
	logger *slog.Logger
}

func NewImporter(ocrCfg common.OCRConfig, pdfCfg common.PDFConfig, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	if ocrCfg.Tesseract == "" {
		ocrCfg.Tesseract = "tesseract"
	}
	if ocrCfg.Pdftoppm == "" {
		ocrCfg.Pdftoppm = "pdftoppm"
	}
	if ocrCfg.TesseractLang == "" {
		ocrCfg.TesseractLang = "eng"
	}
	if ocrCfg.DPI <= 0 {
		ocrCfg.DPI = 300
	}
	if pdfCfg.TextLayerMinWords <= 0 {
		pdfCfg.TextLayerMinWords = 30
	}
	return &Importer{ocrCfg: ocrCfg, pdfCfg: pdfCfg, runner: common.ExecRunner{}, logger: logger}
}

// Parse runs the whole sub-pipeline. Stage failures are recovered
// locally: exhausting every extraction path yields an empty-but-valid
// payload so batch processing can continue.
func (im *Importer) Parse(ctx context.Context, path string) (extract.Payload, error) {
	im.logger.Info("parsing pdf file", "path", path)

	textMode := im.hasTextLayer(path)

	var (
		pageTexts []string
		ocrWords  []Word // first-page word boxes, OCR mode only
	)
	if textMode {
		texts, err := nativePageTexts(path)
		if err != nil {
			im.logger.Warn("native text extraction failed", "path", path, "error", err)
		}
		pageTexts = texts
	} else {
		pages, err := im.ocrPages(ctx, path)
		if err != nil {
			im.logger.Warn("ocr extraction failed", "path", path, "error", err)
		}
		for i, p := range pages {
			pageTexts = append(pageTexts, p.Text)
			if i == 0 {
				ocrWords = p.Words
			}
		}
	}

	cleaned := make([]string, 0, len(pageTexts))
	for _, t := range pageTexts {
		cleaned = append(cleaned, cleanText(t))
	}
	combined := strings.Join(cleaned, "\n")

	tables := im.extractTables(path, ocrWords, !textMode)
	lineItems := ExtractLineItems(combined)
	fields := extractHeaderFields(combined)

	rows := make([]map[string]any, 0, len(lineItems))
	for _, li := range lineItems {
		rows = append(rows, li.Row())
	}
	if len(rows) == 0 {
		rows = tabular.FlattenRows(tables)
	}

	method := "pdf-text"
	if !textMode {
		method = "pdf-ocr"
	}
	im.logger.Info("pdf parsed",
		"path", path, "method", method,
		"line_items", len(lineItems), "tables", len(tables), "rows", len(rows),
	)

	return extract.Payload{
		RawText: combined,
		RawStructured: map[string]any{
			"method":        method,
			"tables":        tables,
			"line_items":    lineItems,
			"header_fields": fields,
		},
		Rows: rows,
	}, nil
}

// hasTextLayer reports whether the first two pages carry enough native
// text to skip OCR.
func (im *Importer) hasTextLayer(path string) bool {
	f, r, err := pdf.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	var b strings.Builder
	limit := r.NumPage()
	if limit > 2 {
		limit = 2
	}
	for i := 1; i <= limit; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		t, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(" ")
		b.WriteString(t)
	}
	return len(strings.Fields(b.String())) >= im.pdfCfg.TextLayerMinWords
}

// nativePageTexts extracts the text layer of every page.
func nativePageTexts(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	texts := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		t, err := p.GetPlainText(nil)
		if err != nil {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, t)
	}
	return texts, nil
}

var (
	reBlankRuns = regexp.MustCompile(`\n\s*\n+`)
	reHSpace    = regexp.MustCompile(`[ \t]+`)
)

// cleanText normalizes a text block: CR to LF, blank-line runs to one
// newline, horizontal whitespace runs to one space, trimmed.
func cleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r", "\n")
	text = reBlankRuns.ReplaceAllString(text, "\n")
	text = reHSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
