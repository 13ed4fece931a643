// Package tabular turns raw header/row material from any extractor into a
// canonical table: unique non-blank columns, rectangular rows, inferred
// field types, and a single null representation for missing values.
package tabular

import (
	"fmt"
	"math"
	"strings"

	"github.com/maini-dms/demand-importer/constants"
)

// RawTable is the canonical table record shared by all extractors.
// Every row holds exactly the keys in Columns.
type RawTable struct {
	Columns    []string                       `json:"columns"`
	Rows       []map[string]any               `json:"rows"`
	FieldTypes map[string]constants.FieldType `json:"field_types"`
	Section    string                         `json:"section,omitempty"`
}

// FlattenRows appends every row of every table into one flat slice.
// The result is never nil.
func FlattenRows(tables []RawTable) []map[string]any {
	rows := make([]map[string]any, 0)
	for _, t := range tables {
		rows = append(rows, t.Rows...)
	}
	return rows
}

// CellString renders a cell value for inspection. Nil and NaN render empty.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%v", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// isNullCell reports whether a cell should collapse to the null sentinel.
func isNullCell(v any) bool {
	s := strings.ToLower(strings.TrimSpace(CellString(v)))
	return s == "" || s == "nan"
}
