package pdf

import (
	"regexp"
	"strconv"
	"strings"
)

// LineItem is one fixed-shape order line pulled from PDF text,
// independent of any table geometry.
type LineItem struct {
	ItemNo      string  `json:"item_no"`
	Quantity    int     `json:"quantity"`
	UOM         string  `json:"uom"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
}

// Row renders the line item as an open row mapping for reconciliation.
func (li LineItem) Row() map[string]any {
	return map[string]any{
		"ITEM_NO":     li.ItemNo,
		"QUANTITY":    li.Quantity,
		"UOM":         li.UOM,
		"DESCRIPTION": li.Description,
		"UNIT_PRICE":  li.UnitPrice,
	}
}

// lineItemRe matches: <3-digit item> <qty> <2-letter UoM> <description> $<price>
var lineItemRe = regexp.MustCompile(
	`(?m)(?P<item>\d{3})\s+(?P<qty>\d+)\s+(?P<uom>[A-Z]{2})\s+(?P<desc>.+?)\s+\$\s*(?P<price>\d+\.\d+)`)

// ExtractLineItems pulls every fixed-shape order line from the text.
func ExtractLineItems(text string) []LineItem {
	var items []LineItem
	for _, m := range lineItemRe.FindAllStringSubmatch(text, -1) {
		qty, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		price, err := strconv.ParseFloat(m[5], 64)
		if err != nil {
			continue
		}
		items = append(items, LineItem{
			ItemNo:      m[1],
			Quantity:    qty,
			UOM:         m[3],
			Description: strings.TrimSpace(m[4]),
			UnitPrice:   price,
		})
	}
	return items
}

// Header/metadata patterns. Each returns its first match; the grand
// total is the maximum currency-like amount on the document.
var (
	invoiceRes = []*regexp.Regexp{
		regexp.MustCompile(`Invoice\s*No[:\s]*([A-Za-z0-9\-/]+)`),
		regexp.MustCompile(`PO\s*#[:\s]*([A-Za-z0-9\-/]+)`),
		regexp.MustCompile(`Order\s*No[:\s]*([A-Za-z0-9\-/]+)`),
	}
	dateRes = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`),
		regexp.MustCompile(`\b([A-Za-z]{3,}\s+\d{1,2},\s*\d{4})\b`),
	}
	gstinRe  = regexp.MustCompile(`\b([0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][A-Z0-9]Z[A-Z0-9])\b`)
	amountRe = regexp.MustCompile(`\$\s*([0-9,]+\.\d{2})`)
)

// extractHeaderFields scans for invoice/order identity, document date,
// tax id, and grand total. Missing fields stay absent from the map.
func extractHeaderFields(text string) map[string]any {
	fields := map[string]any{}
	if v := firstMatch(invoiceRes, text); v != "" {
		fields["invoice_no"] = v
	}
	if v := firstMatch(dateRes, text); v != "" {
		fields["doc_date"] = v
	}
	if m := gstinRe.FindStringSubmatch(text); m != nil {
		fields["gstin"] = m[1]
	}
	if total, ok := documentTotal(text); ok {
		fields["total"] = total
	}
	return fields
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// documentTotal returns the largest $-amount found, under the heuristic
// that the biggest currency figure on an order document is the total.
func documentTotal(text string) (float64, bool) {
	var best float64
	found := false
	for _, m := range amountRe.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if !found || v > best {
			best = v
			found = true
		}
	}
	return best, found
}
