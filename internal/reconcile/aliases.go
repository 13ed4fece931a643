package reconcile

// AliasTable maps each canonical field to the ordered source key names
// accepted as synonyms. Resolution probes in order and takes the first
// non-empty value. New trading partners are onboarded by adding alias
// entries here, not new code paths.
type AliasTable map[string][]string

// Canonical field names used as AliasTable keys.
const (
	FieldKASName      = "kas_name"
	FieldCustomerName = "customer_name"
	FieldSiteLocation = "site_location"
	FieldCountry      = "country"
	FieldSalesType    = "sales_type"
	FieldIncoterms    = "incoterms"
	FieldPOOrForecast = "po_or_forecast"
	FieldCategory     = "category"
	FieldSubCategory  = "sub_category"
	FieldCustomerPart = "customer_part"
	FieldMainiPart    = "maini_part"
	FieldOpenQty      = "open_qty"
	FieldUnitPrice    = "unit_price"
	FieldCurrency     = "currency"
	FieldUnitPriceINR = "unit_price_inr"
	FieldTotalINR     = "total_inr"
	FieldDocDate      = "doc_date"
	FieldShipDate     = "ship_date"
)

// DefaultAliases covers the key layouts seen across trading partners.
func DefaultAliases() AliasTable {
	return AliasTable{
		FieldKASName:      {"KAS Name", "kas_name"},
		FieldCustomerName: {"Customer Name", "customer_name"},
		FieldSiteLocation: {"Site location", "Site Location", "site_location"},
		FieldCountry:      {"Country", "country"},
		FieldSalesType:    {"Direct Sales / WH Movement", "sales_type", "Direct Sales"},
		FieldIncoterms:    {"Incoterms", "Incoterm", "Line Incoterm"},
		FieldPOOrForecast: {"PO/POS number", "PO", "po_number", "Forecast", "Forecast#"},
		FieldCategory:     {"Category", "category"},
		FieldSubCategory:  {"Sub Category", "sub_category"},
		FieldCustomerPart: {"ERP Code", "Customer Material Number", "customer_part"},
		FieldMainiPart:    {"Maini part #", "Maini part", "maini_part"},
		FieldOpenQty:      {"Open Sched Qty", "Remaining Quantity", "open_qty", "Balance Due"},
		FieldUnitPrice:    {"Unit Price", "UNIT_PRICE", "unit_price"},
		FieldCurrency:     {"Currency", "currency"},
		FieldUnitPriceINR: {"Unit Price in INR", "unit_price_inr"},
		FieldTotalINR:     {"Total in INR", "total_inr"},
		FieldDocDate:      {"Doc date", "doc_date", "need_date", "promised_date"},
		FieldShipDate:     {"Ship date", "ship_date"},
	}
}

// confidenceKeys are the expected row keys whose presence drives the
// confidence score.
var confidenceKeys = []string{
	"PO", "PO/POS number", "Forecast", "ERP Code", "Customer Material Number",
	"Open Sched Qty", "Remaining Quantity", "Customer Name", "KAS Name",
}
