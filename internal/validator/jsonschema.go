// Package validator checks caller-supplied JSON Schemas for draft-7
// structural well-formedness before any backend call is made.
package validator

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"refinery/internal/domain"
)

// CheckDraft7 validates that schema is a structurally valid draft-7 JSON Schema.
func CheckDraft7(schema map[string]any) error {
	b, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("%w: marshaling schema: %v", domain.ErrSchemaValidation, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaValidation, err)
	}
	if _, err := compiler.Compile("schema.json"); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaValidation, err)
	}
	return nil
}

// CheckDraft7String parses a JSON string and validates it as a draft-7 schema.
// Used for the multipart upload route, where the schema arrives as a form field.
func CheckDraft7String(s string) (map[string]any, error) {
	var schema map[string]any
	if err := json.Unmarshal([]byte(s), &schema); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", domain.ErrSchemaValidation, err)
	}
	if err := CheckDraft7(schema); err != nil {
		return nil, err
	}
	return schema, nil
}
