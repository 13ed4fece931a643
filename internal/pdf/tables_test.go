package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFromWords(t *testing.T) {
	// Three visual rows; small top jitter stays within one 12px bucket.
	words := []Word{
		{Text: "Qty", Left: 120, Top: 2},
		{Text: "PO", Left: 10, Top: 0},
		{Text: "UOM", Left: 240, Top: 1},
		{Text: "P1", Left: 10, Top: 24},
		{Text: "5", Left: 121, Top: 25},
		{Text: "EA", Left: 239, Top: 26},
		{Text: "P2", Left: 11, Top: 48},
		{Text: "3", Left: 120, Top: 49},
		{Text: "EA", Left: 240, Top: 48},
	}

	table, ok := tableFromWords(words)
	require.True(t, ok)
	assert.Equal(t, []string{"PO", "Qty", "UOM"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "P1", table.Rows[0]["PO"])
	assert.Equal(t, "5", table.Rows[0]["Qty"])
	assert.Equal(t, "P2", table.Rows[1]["PO"])
}

func TestTableFromWordsNeedsTwoRows(t *testing.T) {
	_, ok := tableFromWords([]Word{
		{Text: "only", Left: 10, Top: 0},
		{Text: "one", Left: 80, Top: 3},
	})
	assert.False(t, ok)
}

func TestGridToTable(t *testing.T) {
	table := gridToTable([][]string{
		{"PO", "Qty"},
		{"P1", "5"},
	})
	assert.Equal(t, []string{"PO", "Qty"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "5", table.Rows[0]["Qty"])
}
