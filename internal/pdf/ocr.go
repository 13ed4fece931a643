package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Word is one OCR token with its pixel position on the page.
type Word struct {
	Text string `json:"text"`
	Left int    `json:"left"`
	Top  int    `json:"top"`
}

// PageOCR is the OCR result for one rasterized page.
type PageOCR struct {
	Page  int    `json:"page"`
	Text  string `json:"text"`
	Words []Word `json:"words"`
}

// ocrPages rasterizes every page at the configured DPI and runs the OCR
// engine twice per page: once for plain text, once in TSV mode for
// word-level bounding boxes. Per-page failures are skipped.
func (im *Importer) ocrPages(ctx context.Context, path string) ([]PageOCR, error) {
	tmpDir, err := os.MkdirTemp("", "di-ocr-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			im.logger.Warn("remove ocr temp dir", "dir", tmpDir, "error", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := im.runner.Run(ctx, im.ocrCfg.Pdftoppm,
		"-r", strconv.Itoa(im.ocrCfg.DPI), "-png", path, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, string(errb))
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if im.ocrCfg.MaxPages > 0 && len(matches) > im.ocrCfg.MaxPages {
		matches = matches[:im.ocrCfg.MaxPages]
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no images")
	}

	pages := make([]PageOCR, 0, len(matches))
	for i, img := range matches {
		text, err := im.tesseractText(ctx, img)
		if err != nil {
			im.logger.Warn("page ocr failed", "image", img, "error", err)
			continue
		}
		words, err := im.tesseractWords(ctx, img)
		if err != nil {
			im.logger.Warn("page ocr tsv failed", "image", img, "error", err)
			words = nil
		}
		pages = append(pages, PageOCR{Page: i + 1, Text: text, Words: words})
	}
	return pages, nil
}

func (im *Importer) tesseractText(ctx context.Context, img string) (string, error) {
	args := im.tesseractArgs(img)
	out, errb, err := im.runner.Run(ctx, im.ocrCfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, string(errb))
	}
	return string(out), nil
}

// tesseractWords runs the engine in TSV mode and keeps token text plus
// left/top pixel coordinates.
func (im *Importer) tesseractWords(ctx context.Context, img string) ([]Word, error) {
	args := append(im.tesseractArgs(img), "tsv")
	out, errb, err := im.runner.Run(ctx, im.ocrCfg.Tesseract, args...)
	if err != nil {
		return nil, fmt.Errorf("tesseract tsv: %w: %s", err, string(errb))
	}
	return parseTSVWords(string(out)), nil
}

func (im *Importer) tesseractArgs(img string) []string {
	args := []string{img, "stdout", "-l", im.ocrCfg.TesseractLang}
	if im.ocrCfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", im.ocrCfg.TessdataDir)
	}
	return args
}

// parseTSVWords reads tesseract TSV output. Columns: level, page_num,
// block_num, par_num, line_num, word_num, left, top, width, height,
// conf, text. The header line and empty tokens are skipped.
func parseTSVWords(tsv string) []Word {
	var words []Word
	for i, ln := range strings.Split(tsv, "\n") {
		if i == 0 || len(ln) == 0 {
			continue // skip header
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		text := strings.TrimSpace(cols[11])
		if text == "" {
			continue
		}
		left, err1 := strconv.Atoi(cols[6])
		top, err2 := strconv.Atoi(cols[7])
		if err1 != nil || err2 != nil {
			continue
		}
		words = append(words, Word{Text: text, Left: left, Top: top})
	}
	return words
}
