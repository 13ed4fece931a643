package pdf

import (
	"math"
	"sort"

	"github.com/ledongthuc/pdf"

	"github.com/maini-dms/demand-importer/internal/tabular"
)

// Table-chain tuning. The grid pass expects ruled-table alignment where
// cell starts coincide almost exactly; the stream pass tolerates the
// looser alignment of whitespace-separated columns.
const (
	gridTolerance   = 2.0
	streamTolerance = 8.0
	minTableRows    = 3
	bboxRowBucket   = 12 // pixels; vertical clustering step for OCR words
)

// extractTables runs the fallback chain over the document: ruled-line
// grid alignment, then whitespace alignment, then the row-grouped layout
// heuristic, then (OCR mode only) bounding-box reconstruction of the
// first page. First non-empty result wins; every stage failure is local.
func (im *Importer) extractTables(path string, ocrWords []Word, ocrMode bool) []tabular.RawTable {
	if tables := im.geometryTables(path, gridTolerance, 0.8); len(tables) > 0 {
		im.logger.Debug("tables via grid alignment", "path", path, "count", len(tables))
		return tables
	}
	if tables := im.geometryTables(path, streamTolerance, 0.5); len(tables) > 0 {
		im.logger.Debug("tables via whitespace alignment", "path", path, "count", len(tables))
		return tables
	}
	if tables := im.layoutTables(path); len(tables) > 0 {
		im.logger.Debug("tables via layout heuristic", "path", path, "count", len(tables))
		return tables
	}
	if ocrMode && len(ocrWords) > 0 {
		if table, ok := tableFromWords(ocrWords); ok {
			im.logger.Debug("table via ocr word boxes", "path", path)
			return []tabular.RawTable{table}
		}
	}
	return nil
}

// token is one word-level run of native PDF text.
type token struct {
	x float64
	s string
}

// geometryTables reconstructs per-page tables from native word geometry.
// Column positions are x-start clusters (within tol) that appear in at
// least minShare of the page's text rows; rows with fewer than two
// assigned cells are treated as captions and dropped.
func (im *Importer) geometryTables(path string, tol, minShare float64) []tabular.RawTable {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var tables []tabular.RawTable
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := tokenRows(p)
		if err != nil || len(rows) < minTableRows {
			continue
		}

		centers := clusterColumns(rows, tol, minShare)
		if len(centers) < 2 {
			continue
		}

		var grid [][]string
		for _, row := range rows {
			cells := make([]string, len(centers))
			assigned := 0
			for _, tk := range row {
				col := nearestColumn(centers, tk.x, tol*3)
				if col < 0 {
					continue
				}
				if cells[col] == "" {
					cells[col] = tk.s
					assigned++
				} else {
					cells[col] += " " + tk.s
				}
			}
			if assigned >= 2 {
				grid = append(grid, cells)
			}
		}
		if len(grid) < minTableRows {
			continue
		}
		tables = append(tables, gridToTable(grid))
	}
	return tables
}

// layoutTables is the native library's row-grouping heuristic: the
// longest run of consecutive text rows with an identical token count
// (at least two) is read as a table.
func (im *Importer) layoutTables(path string) []tabular.RawTable {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var tables []tabular.RawTable
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := tokenRows(p)
		if err != nil {
			continue
		}

		bestStart, bestLen := -1, 0
		runStart, runLen := -1, 0
		for j, row := range rows {
			if len(row) >= 2 && runStart >= 0 && len(row) == len(rows[j-1]) {
				runLen++
			} else if len(row) >= 2 {
				runStart, runLen = j, 1
			} else {
				runStart, runLen = -1, 0
			}
			if runLen > bestLen {
				bestStart, bestLen = runStart, runLen
			}
		}
		if bestLen < minTableRows {
			continue
		}

		grid := make([][]string, 0, bestLen)
		for _, row := range rows[bestStart : bestStart+bestLen] {
			cells := make([]string, len(row))
			for k, tk := range row {
				cells[k] = tk.s
			}
			grid = append(grid, cells)
		}
		tables = append(tables, gridToTable(grid))
	}
	return tables
}

// tableFromWords rebuilds a table from OCR word boxes on one page: rows
// are words sharing a 12-pixel vertical bucket, ordered left to right;
// the first reconstructed row is the header.
func tableFromWords(words []Word) (tabular.RawTable, bool) {
	buckets := make(map[int][]Word)
	for _, w := range words {
		key := int(math.Round(float64(w.Top)/bboxRowBucket)) * bboxRowBucket
		buckets[key] = append(buckets[key], w)
	}
	if len(buckets) < 2 {
		return tabular.RawTable{}, false
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	grid := make([][]string, 0, len(keys))
	for _, k := range keys {
		row := buckets[k]
		sort.Slice(row, func(a, b int) bool { return row[a].Left < row[b].Left })
		cells := make([]string, len(row))
		for i, w := range row {
			cells[i] = w.Text
		}
		grid = append(grid, cells)
	}
	return gridToTable(grid), true
}

func gridToTable(grid [][]string) tabular.RawTable {
	header := grid[0]
	rows := make([][]any, 0, len(grid)-1)
	for _, r := range grid[1:] {
		row := make([]any, len(r))
		for i, c := range r {
			row[i] = c
		}
		rows = append(rows, row)
	}
	return tabular.Normalize(header, rows)
}

// tokenRows merges each text row's character runs into word tokens.
func tokenRows(p pdf.Page) ([][]token, error) {
	textRows, err := p.GetTextByRow()
	if err != nil {
		return nil, err
	}
	rows := make([][]token, 0, len(textRows))
	for _, tr := range textRows {
		var row []token
		var cur token
		var curEnd float64
		for _, t := range tr.Content {
			gap := t.X - curEnd
			sep := t.FontSize * 0.25
			if sep <= 0 {
				sep = 1.0
			}
			if cur.s != "" && gap <= sep {
				cur.s += t.S
			} else {
				if cur.s != "" {
					row = append(row, cur)
				}
				cur = token{x: t.X, s: t.S}
			}
			curEnd = t.X + t.W
		}
		if cur.s != "" {
			row = append(row, cur)
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// clusterColumns finds x-start positions shared by at least minShare of
// the rows, merged within tol.
func clusterColumns(rows [][]token, tol, minShare float64) []float64 {
	type cluster struct {
		sum     float64
		n       int
		support map[int]struct{}
	}
	var clusters []*cluster
	for ri, row := range rows {
		for _, tk := range row {
			var found *cluster
			for _, c := range clusters {
				if math.Abs(c.sum/float64(c.n)-tk.x) <= tol {
					found = c
					break
				}
			}
			if found == nil {
				found = &cluster{support: map[int]struct{}{}}
				clusters = append(clusters, found)
			}
			found.sum += tk.x
			found.n++
			found.support[ri] = struct{}{}
		}
	}

	need := int(minShare * float64(len(rows)))
	if need < minTableRows {
		need = minTableRows
	}
	var centers []float64
	for _, c := range clusters {
		if len(c.support) >= need {
			centers = append(centers, c.sum/float64(c.n))
		}
	}
	sort.Float64s(centers)
	return centers
}

func nearestColumn(centers []float64, x, maxDist float64) int {
	best, bestDist := -1, maxDist
	for i, c := range centers {
		if d := math.Abs(c - x); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
