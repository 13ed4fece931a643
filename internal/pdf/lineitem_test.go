package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLineItems(t *testing.T) {
	text := "101 5 EA Widget Assembly $12.50\n102 10 KG Steel Rod $ 3.75\nnot a line item"

	items := ExtractLineItems(text)
	require.Len(t, items, 2)

	assert.Equal(t, LineItem{
		ItemNo:      "101",
		Quantity:    5,
		UOM:         "EA",
		Description: "Widget Assembly",
		UnitPrice:   12.50,
	}, items[0])
	assert.Equal(t, "102", items[1].ItemNo)
	assert.Equal(t, 10, items[1].Quantity)
	assert.Equal(t, 3.75, items[1].UnitPrice)
}

func TestExtractLineItemsNoMatches(t *testing.T) {
	assert.Empty(t, ExtractLineItems("quarterly demand summary, no order lines here"))
}

func TestLineItemRow(t *testing.T) {
	row := LineItem{ItemNo: "101", Quantity: 5, UOM: "EA", Description: "Widget", UnitPrice: 12.5}.Row()
	assert.Equal(t, "101", row["ITEM_NO"])
	assert.Equal(t, 5, row["QUANTITY"])
	assert.Equal(t, "EA", row["UOM"])
	assert.Equal(t, "Widget", row["DESCRIPTION"])
	assert.Equal(t, 12.5, row["UNIT_PRICE"])
}

func TestExtractHeaderFields(t *testing.T) {
	text := "Invoice No: INV-2024-17\n" +
		"Date: 05/01/2024\n" +
		"GSTIN 22AAAAA0000A1Z5\n" +
		"Subtotal $ 1,200.00\n" +
		"Grand Total $ 1,450.50\n"

	fields := extractHeaderFields(text)
	assert.Equal(t, "INV-2024-17", fields["invoice_no"])
	assert.Equal(t, "05/01/2024", fields["doc_date"])
	assert.Equal(t, "22AAAAA0000A1Z5", fields["gstin"])
	assert.Equal(t, 1450.50, fields["total"])
}

func TestExtractHeaderFieldsMissingStayAbsent(t *testing.T) {
	fields := extractHeaderFields("plain paragraph with nothing to find")
	assert.NotContains(t, fields, "invoice_no")
	assert.NotContains(t, fields, "doc_date")
	assert.NotContains(t, fields, "gstin")
	assert.NotContains(t, fields, "total")
}

func TestDocumentTotalPicksLargestAmount(t *testing.T) {
	total, ok := documentTotal("$ 99.00 then $1,250.75 then $ 4.20")
	require.True(t, ok)
	assert.Equal(t, 1250.75, total)

	_, ok = documentTotal("no currency amounts")
	assert.False(t, ok)
}
