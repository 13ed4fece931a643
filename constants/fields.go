package constants

// FieldType is the inferred type of a normalized table column.
type FieldType string

const (
	FieldBoolean  FieldType = "boolean"
	FieldInteger  FieldType = "integer"
	FieldDecimal  FieldType = "decimal"
	FieldDatetime FieldType = "datetime"
	FieldText     FieldType = "text"
)
