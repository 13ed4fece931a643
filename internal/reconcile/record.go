// Package reconcile resolves the open row mappings produced by
// extraction into the one canonical demand schema, using a prioritized
// alias table per target field and a deterministic confidence score.
package reconcile

import (
	"time"

	"github.com/google/uuid"
)

// Record is the canonical demand row every source format maps into.
// Unresolved fields stay nil; they are never defaulted to guesses.
type Record struct {
	ID     uuid.UUID `json:"id"`
	FileID uuid.UUID `json:"file_id"`

	KASName      *string `json:"kas_name"`
	CustomerName *string `json:"customer_name"`
	SiteLocation *string `json:"site_location"`
	Country      *string `json:"country"`
	SalesType    *string `json:"sales_type"`
	Incoterms    *string `json:"incoterms"`

	POOrForecast *string `json:"po_or_forecast"`
	Category     *string `json:"category"`
	SubCategory  *string `json:"sub_category"`

	CustomerPart *string `json:"customer_part"`
	MainiPart    *string `json:"maini_part"`

	OpenQty      *float64 `json:"open_qty"`
	UnitPrice    *float64 `json:"unit_price"`
	Currency     *string  `json:"currency"`
	UnitPriceINR *float64 `json:"unit_price_inr"`
	TotalINR     *float64 `json:"total_inr"`

	DocDate  *time.Time `json:"doc_date"`
	ShipDate *time.Time `json:"ship_date"`

	// SalesMonth is YYYY-MM of the ship date; nil when ship date is nil.
	SalesMonth *string `json:"sales_month"`

	// Confidence is the fraction of expected fields populated, in [0,1],
	// rounded to two decimals. Recomputing on the same row yields the
	// same value.
	Confidence float64 `json:"confidence"`
}
