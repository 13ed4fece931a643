package tabular

import (
	"fmt"
	"strings"

	"github.com/maini-dms/demand-importer/constants"
)

// Normalize turns a raw header list plus a rectangular-or-ragged row list
// into a RawTable. It never fails on missing data: an empty row set still
// yields valid columns and field types.
//
// Steps, in order: synthesize headers when none are supplied, replace
// blank headers, rename duplicates, pad ragged rows with nulls, drop
// fully-empty columns, infer field types, collapse ""/"NaN" to null.
func Normalize(columns []string, rows [][]any) RawTable {
	if len(columns) == 0 {
		width := 0
		if len(rows) > 0 {
			width = len(rows[0])
		}
		columns = make([]string, width)
	}

	// Blank headers become positional Column_<n> names (1-based).
	fixed := make([]string, len(columns))
	for i, col := range columns {
		if strings.TrimSpace(col) == "" {
			fixed[i] = fmt.Sprintf("Column_%d", i+1)
		} else {
			fixed[i] = strings.TrimSpace(col)
		}
	}

	// Duplicate headers get an occurrence suffix starting at _1. The
	// suffix advances past names already present in the header, so
	// ["A", "A_1", "A"] yields A, A_1, A_2.
	counts := make(map[string]int, len(fixed))
	taken := make(map[string]struct{}, len(fixed))
	unique := make([]string, len(fixed))
	for i, col := range fixed {
		name := col
		if _, dup := taken[col]; dup {
			n := counts[col]
			for {
				n++
				name = fmt.Sprintf("%s_%d", col, n)
				if _, clash := taken[name]; !clash {
					break
				}
			}
			counts[col] = n
		}
		taken[name] = struct{}{}
		unique[i] = name
	}

	// Pad every row to the header width; extra cells are dropped.
	width := len(unique)
	padded := make([][]any, 0, len(rows))
	for _, row := range rows {
		p := make([]any, width)
		for i := 0; i < width && i < len(row); i++ {
			p[i] = row[i]
		}
		padded = append(padded, p)
	}

	// A column is empty when every value trims/lowercases to "" or "nan".
	kept := make([]int, 0, width)
	keptNames := make([]string, 0, width)
	for i, name := range unique {
		empty := true
		for _, row := range padded {
			if !isNullCell(row[i]) {
				empty = false
				break
			}
		}
		if len(padded) == 0 {
			empty = false
		}
		if !empty {
			kept = append(kept, i)
			keptNames = append(keptNames, name)
		}
	}

	fieldTypes := make(map[string]constants.FieldType, len(kept))
	for k, i := range kept {
		values := make([]string, 0, len(padded))
		for _, row := range padded {
			if isNullCell(row[i]) {
				continue
			}
			values = append(values, strings.TrimSpace(CellString(row[i])))
		}
		fieldTypes[keptNames[k]] = DetectFieldType(values)
	}

	outRows := make([]map[string]any, 0, len(padded))
	for _, row := range padded {
		m := make(map[string]any, len(kept))
		for k, i := range kept {
			if isNullCell(row[i]) {
				m[keptNames[k]] = nil
			} else {
				m[keptNames[k]] = row[i]
			}
		}
		outRows = append(outRows, m)
	}

	return RawTable{
		Columns:    keptNames,
		Rows:       outRows,
		FieldTypes: fieldTypes,
	}
}
