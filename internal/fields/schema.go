package fields

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildRecordSchema returns a JSON-Schema (draft 2020-12 subset) describing
// the wire shape of a Record: exactly the four named string fields, all
// present, nothing else.
func BuildRecordSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"amount": map[string]any{"type": "string"},
			"buyer":  map[string]any{"type": "string"},
			"seller": map[string]any{"type": "string"},
			"date":   map[string]any{"type": "string"},
		},
		"required": []string{"amount", "buyer", "seller", "date"},
	}
}

// ValidateRecordJSON validates data against the record schema.
func ValidateRecordJSON(data []byte) error {
	b, err := json.Marshal(BuildRecordSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
