package extract

import (
	"encoding/json"
	"math"
	"time"

	"github.com/maini-dms/demand-importer/internal/tabular"
)

// JSONSafe recursively converts a value into a shape that marshals
// losslessly: times become ISO-8601 strings, NaN and infinite floats
// become null.
func JSONSafe(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = JSONSafe(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = JSONSafe(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = JSONSafe(val)
		}
		return out
	case []tabular.RawTable:
		// Table cells are open values; sanitize them like any other row.
		out := make([]tabular.RawTable, len(x))
		for i, tbl := range x {
			rows := make([]map[string]any, len(tbl.Rows))
			for j, row := range tbl.Rows {
				rows[j] = JSONSafe(row).(map[string]any)
			}
			tbl.Rows = rows
			out[i] = tbl
		}
		return out
	case time.Time:
		return x.Format(time.RFC3339)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	default:
		return v
	}
}

// MarshalPayload serializes a payload after JSON-safety conversion.
func MarshalPayload(p Payload) ([]byte, error) {
	safe := map[string]any{
		"raw_text":       p.RawText,
		"raw_structured": JSONSafe(p.RawStructured),
		"rows":           JSONSafe(p.Rows),
	}
	return json.Marshal(safe)
}
