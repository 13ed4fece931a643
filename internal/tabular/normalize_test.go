package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maini-dms/demand-importer/constants"
)

func TestNormalizeRowsMatchColumns(t *testing.T) {
	table := Normalize(
		[]string{"PO", "Qty", "Qty"},
		[][]any{
			{"P1", "5"},
			{"P2", "3", "extra"},
			{"P3"},
		},
	)

	assert.Equal(t, []string{"PO", "Qty", "Qty_1"}, table.Columns)
	for _, row := range table.Rows {
		assert.Len(t, row, len(table.Columns))
		for _, col := range table.Columns {
			_, ok := row[col]
			assert.True(t, ok, "row missing column %q", col)
		}
	}
}

func TestNormalizeDuplicateSuffixNeverCollides(t *testing.T) {
	table := Normalize(
		[]string{"A", "A_1", "A"},
		[][]any{{"x", "y", "z"}},
	)

	assert.Equal(t, []string{"A", "A_1", "A_2"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "x", table.Rows[0]["A"])
	assert.Equal(t, "y", table.Rows[0]["A_1"])
	assert.Equal(t, "z", table.Rows[0]["A_2"])
}

func TestNormalizeSynthesizesHeaders(t *testing.T) {
	table := Normalize(nil, [][]any{{"a", "b"}, {"c", "d"}})
	assert.Equal(t, []string{"Column_1", "Column_2"}, table.Columns)

	table = Normalize([]string{"PO", "  "}, [][]any{{"P1", "x"}})
	assert.Equal(t, []string{"PO", "Column_2"}, table.Columns)
}

func TestNormalizeDropsEmptyColumns(t *testing.T) {
	table := Normalize(
		[]string{"PO", "Blank", "NaNCol"},
		[][]any{
			{"P1", "", "nan"},
			{"P2", "  ", "NaN"},
		},
	)
	assert.Equal(t, []string{"PO"}, table.Columns)
}

func TestNormalizeNullSentinels(t *testing.T) {
	table := Normalize(
		[]string{"PO", "Qty"},
		[][]any{
			{"P1", "nan"},
			{"P2", "5"},
		},
	)
	require.Len(t, table.Rows, 2)
	assert.Nil(t, table.Rows[0]["Qty"])
	assert.Equal(t, "5", table.Rows[1]["Qty"])
}

func TestNormalizeFieldTypes(t *testing.T) {
	table := Normalize(
		[]string{"PO", "Qty", "Price", "Ship date"},
		[][]any{
			{"P1", "5", "12.50", "2024-01-05"},
			{"P2", "3", "9.99", "2024-02-10"},
		},
	)
	assert.Equal(t, constants.FieldText, table.FieldTypes["PO"])
	assert.Equal(t, constants.FieldInteger, table.FieldTypes["Qty"])
	assert.Equal(t, constants.FieldDecimal, table.FieldTypes["Price"])
	assert.Equal(t, constants.FieldDatetime, table.FieldTypes["Ship date"])
}

func TestNormalizeEmptyRowsStillValid(t *testing.T) {
	table := Normalize([]string{"PO", "Qty"}, nil)
	assert.Equal(t, []string{"PO", "Qty"}, table.Columns)
	assert.Empty(t, table.Rows)
	assert.Len(t, table.FieldTypes, 2)
}

func TestNormalizeIdempotent(t *testing.T) {
	columns := []string{"PO", "", "PO"}
	rows := [][]any{{"P1", "x", "dup"}, {"P2", "y"}}

	first := Normalize(columns, rows)
	second := Normalize(columns, rows)
	assert.Equal(t, first, second)
}

func TestFlattenRowsNeverNil(t *testing.T) {
	assert.NotNil(t, FlattenRows(nil))
	assert.Empty(t, FlattenRows([]RawTable{{Columns: []string{"A"}}}))
}
