package validation

import (
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error codes shared by rule and schema validation.
const (
	CodeRequired       = "REQUIRED"
	CodeMinLength      = "MIN_LENGTH"
	CodeInvalidFormat  = "INVALID_FORMAT"
	CodeMalformedInput = "MALFORMED_INPUT"
	CodeOutOfRange     = "OUT_OF_RANGE"
	CodeDuplicateValue = "DUPLICATE_VALUE"
	CodeSchemaMismatch = "SCHEMA_MISMATCH"
)

// NewResult builds a result, sorted by field so output is stable.
func NewResult(errs []ValidationError) *ValidationResult {
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return &ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, 0, len(vr.Errors))
	for _, err := range vr.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return messages
}

func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var out []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field {
			out = append(out, err)
		}
	}
	return out
}

// Fields lists the failing paths in order.
func (vr *ValidationResult) Fields() []string {
	fields := make([]string, 0, len(vr.Errors))
	for _, err := range vr.Errors {
		fields = append(fields, err.Field)
	}
	return fields
}

const rootField = "(root)"

// JSONSchema is a compiled JSON Schema document.
type JSONSchema struct {
	schema *gojsonschema.Schema
}

// CompileSchema parses a JSON Schema source once for reuse.
func CompileSchema(schemaJSON string) (*JSONSchema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON schema: %w", err)
	}
	return &JSONSchema{schema: s}, nil
}

// Validate checks any Go value (struct, map) against the schema. Field names
// in the result use dotted paths, e.g. "services.0.pricing.price".
func (s *JSONSchema) Validate(document interface{}) (*ValidationResult, error) {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return NewResult(nil), nil
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   schemaErrorField(desc),
			Message: desc.Description(),
			Code:    CodeSchemaMismatch,
		})
	}
	return NewResult(errs), nil
}

func schemaErrorField(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if field == rootField {
		field = ""
	}
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			if field == "" {
				return prop
			}
			return field + "." + prop
		}
	}
	if field == "" {
		return rootField
	}
	return field
}
