package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildRecordSchema returns the JSON-Schema (draft 2020-12 subset) the
// serialized canonical record must satisfy before handoff to the
// enrichment/export collaborator.
func buildRecordSchema() map[string]any {
	nullableString := map[string]any{"type": []string{"string", "null"}}
	nullableNumber := map[string]any{"type": []string{"number", "null"}}

	props := map[string]any{
		"id":             map[string]any{"type": "string", "minLength": 36, "maxLength": 36},
		"file_id":        map[string]any{"type": "string", "minLength": 36, "maxLength": 36},
		"kas_name":       nullableString,
		"customer_name":  nullableString,
		"site_location":  nullableString,
		"country":        nullableString,
		"sales_type":     nullableString,
		"incoterms":      nullableString,
		"po_or_forecast": nullableString,
		"category":       nullableString,
		"sub_category":   nullableString,
		"customer_part":  nullableString,
		"maini_part":     nullableString,
		"open_qty":       nullableNumber,
		"unit_price":     nullableNumber,
		"currency":       nullableString,
		"unit_price_inr": nullableNumber,
		"total_inr":      nullableNumber,
		"doc_date":       nullableString,
		"ship_date":      nullableString,
		"sales_month": map[string]any{
			"type":    []string{"string", "null"},
			"pattern": `^\d{4}-\d{2}$`,
		},
		"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"id", "file_id", "confidence"},
	}
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := json.Marshal(buildRecordSchema())
		if err != nil {
			schemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("demand-record.json", bytes.NewReader(doc)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile("demand-record.json")
	})
	return schema, schemaErr
}

// ValidateRecord checks the serialized record against the embedded
// schema. A failure here means a mapper bug, not bad input.
func ValidateRecord(rec Record) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile record schema: %w", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("roundtrip record: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("record schema: %w", err)
	}
	return nil
}
