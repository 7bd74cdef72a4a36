// Package rubric provides loading and lookup of grading rubrics for MOS Word practice projects.
package rubric

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed rubric.schema.json
var rubricSchema string

// FieldError represents a single schema validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError represents a rubric file that does not conform to the
// rubric JSON Schema.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("rubric schema validation failed:\n")
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, fe.Field, fe.Message))
	}
	return sb.String()
}

// ValidateBytes validates raw rubric file content against the embedded
// rubric JSON Schema before any decoding takes place.
func ValidateBytes(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(rubricSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("rubric schema validation failed during load: %w", err)
	}

	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return schemaErr
}
