package batch

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator validates batch items against a JSON Schema. Tool packages
// declare their item schema once and validate every item before any
// automation runs, so a malformed batch fails fast instead of partially.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles a JSON Schema from source. The name is used as the
// schema's resource URL in error messages.
func NewValidator(name, schemaJSON string) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(name, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// MustValidator compiles a JSON Schema and panics on failure. Intended for
// package-level schema variables where the schema text is a constant.
func MustValidator(name, schemaJSON string) *Validator {
	v, err := NewValidator(name, schemaJSON)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks a decoded JSON value against the schema. Returns the most
// specific validation failure rather than the full cause tree.
func (v *Validator) Validate(item interface{}) error {
	if err := v.schema.Validate(item); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return leafValidationError(ve)
		}
		return err
	}
	return nil
}

// leafValidationError walks the cause tree to the first leaf error, which
// names the offending field instead of the whole document.
func leafValidationError(ve *jsonschema.ValidationError) error {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return fmt.Errorf("invalid item: %s", ve.Message)
	}
	return fmt.Errorf("invalid item at %s: %s", ve.InstanceLocation, ve.Message)
}

// ParseObjectArray parses a parameter that must be an array of JSON objects.
// Accepts both decoded arrays and JSON-encoded strings, mirroring
// ParseStringOrArray.
func ParseObjectArray(param interface{}, paramName string) ([]map[string]interface{}, error) {
	if param == nil {
		return nil, fmt.Errorf("%s is required", paramName)
	}

	var raw []interface{}

	switch v := param.(type) {
	case []interface{}:
		raw = v
	case string:
		if err := json.Unmarshal([]byte(v), &raw); err != nil {
			return nil, fmt.Errorf("%s must be a JSON array of objects", paramName)
		}
	default:
		return nil, fmt.Errorf("%s must be an array of objects", paramName)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("%s cannot be empty", paramName)
	}

	result := make([]map[string]interface{}, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be an object", paramName, i)
		}
		result = append(result, obj)
	}

	return result, nil
}
