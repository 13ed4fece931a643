package reconcile

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Mapper resolves extracted rows into canonical demand records.
type Mapper struct {
	aliases AliasTable
	logger  *slog.Logger
}

func NewMapper(aliases AliasTable, logger *slog.Logger) *Mapper {
	if logger == nil {
		logger = slog.Default()
	}
	if aliases == nil {
		aliases = DefaultAliases()
	}
	return &Mapper{aliases: aliases, logger: logger}
}

// MapRow resolves one flat row into a Record. The record ID is derived
// from the file ID and row index so recomputation is idempotent.
func (m *Mapper) MapRow(fileID uuid.UUID, rowIndex int, row map[string]any) Record {
	rec := Record{
		ID:     uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/%d", fileID, rowIndex))),
		FileID: fileID,
	}

	rec.KASName = m.resolveString(row, FieldKASName)
	rec.CustomerName = m.resolveString(row, FieldCustomerName)
	rec.SiteLocation = m.resolveString(row, FieldSiteLocation)
	rec.Country = m.resolveString(row, FieldCountry)
	rec.SalesType = m.resolveString(row, FieldSalesType)
	rec.Incoterms = m.resolveString(row, FieldIncoterms)
	rec.POOrForecast = m.resolveString(row, FieldPOOrForecast)
	rec.Category = m.resolveString(row, FieldCategory)
	rec.SubCategory = m.resolveString(row, FieldSubCategory)
	rec.CustomerPart = m.resolveString(row, FieldCustomerPart)
	rec.MainiPart = m.resolveString(row, FieldMainiPart)

	rec.OpenQty = safeFloat(m.resolve(row, FieldOpenQty))
	rec.UnitPrice = safeFloat(m.resolve(row, FieldUnitPrice))
	rec.Currency = m.resolveString(row, FieldCurrency)
	rec.UnitPriceINR = safeFloat(m.resolve(row, FieldUnitPriceINR))
	rec.TotalINR = safeFloat(m.resolve(row, FieldTotalINR))

	rec.DocDate = ParseFlexibleDate(m.resolve(row, FieldDocDate))
	rec.ShipDate = ParseFlexibleDate(m.resolve(row, FieldShipDate))
	rec.SalesMonth = SalesMonth(rec.ShipDate)

	rec.Confidence = Confidence(row)
	return rec
}

// resolve returns the value of the first alias key present with a
// non-empty value, or nil when no alias matches.
func (m *Mapper) resolve(row map[string]any, field string) any {
	for _, key := range m.aliases[field] {
		if v, ok := row[key]; ok && !isEmptyValue(v) {
			return v
		}
	}
	return nil
}

func (m *Mapper) resolveString(row map[string]any, field string) *string {
	v := m.resolve(row, field)
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(toString(v))
	if s == "" {
		return nil
	}
	return &s
}

// Confidence is the fraction of expected row keys carrying a non-empty
// value, in [0,1], rounded to two decimals. Deterministic for a given
// row and expected-key set.
func Confidence(row map[string]any) float64 {
	present := 0
	for _, k := range confidenceKeys {
		if v, ok := row[k]; ok && !isEmptyValue(v) {
			present++
		}
	}
	ratio := float64(present) / float64(len(confidenceKeys))
	return math.Round(ratio*100) / 100
}

// isEmptyValue mirrors the "not null, not empty string, not empty
// collection" resolution rule.
func isEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	default:
		return false
	}
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// safeFloat coerces numeric-looking values; anything unparseable is nil.
func safeFloat(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return &x
	case float32:
		f := float64(x)
		return &f
	case int:
		f := float64(x)
		return &f
	case int64:
		f := float64(x)
		return &f
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
		return nil
	default:
		return nil
	}
}
