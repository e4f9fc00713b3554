package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema is a compiled JSON Schema describing the shape of one kind of record.
type Schema struct {
	name     string
	compiled *jsonschema.Schema
}

func (s *Schema) Name() string { return s.name }

var (
	InvoiceSchema = mustCompile("invoice", invoiceSchemaMap())
	ResumeSchema  = mustCompile("resume", resumeSchemaMap())
	LatexSchema   = mustCompile("latex", latexSchemaMap())
)

// Validate checks a record against a schema.
func Validate(r *Record, s *Schema) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := s.compiled.Validate(v); err != nil {
		return fmt.Errorf("record does not match %s schema: %w", s.name, err)
	}
	return nil
}

func mustCompile(name string, schemaMap map[string]any) *Schema {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		panic(fmt.Sprintf("marshal %s schema: %v", name, err))
	}
	url := name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add %s schema: %v", name, err))
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("compile %s schema: %v", name, err))
	}
	return &Schema{name: name, compiled: compiled}
}

func stringProp() map[string]any {
	return map[string]any{"type": "string"}
}

func objectOf(props map[string]any, required []string) map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func invoiceSchemaMap() map[string]any {
	lineItem := objectOf(map[string]any{
		"Item":     stringProp(),
		"Quantity": map[string]any{"type": "string", "pattern": `^\d+$`},
		"Price":    map[string]any{"type": "string", "pattern": `^[\d,]+\.\d{2}$`},
	}, LineItemKeys)

	return objectOf(map[string]any{
		FieldTotal: stringProp(),
		FieldLineItems: map[string]any{
			"oneOf": []any{
				map[string]any{"const": NotFoundText},
				map[string]any{"type": "array", "minItems": 1, "items": lineItem},
			},
		},
	}, []string{FieldTotal, FieldLineItems})
}

func resumeSchemaMap() map[string]any {
	props := make(map[string]any, len(ResumeFields))
	for _, name := range ResumeFields {
		props[name] = stringProp()
	}
	return map[string]any{
		"oneOf": []any{
			objectOf(props, ResumeFields),
			objectOf(map[string]any{FieldRawText: stringProp()}, []string{FieldRawText}),
		},
	}
}

func latexSchemaMap() map[string]any {
	return map[string]any{
		"oneOf": []any{
			objectOf(map[string]any{
				FieldMathML: map[string]any{"type": "string", "minLength": 1},
			}, []string{FieldMathML}),
			objectOf(map[string]any{
				FieldRawLaTeX: stringProp(),
				FieldError:    map[string]any{"type": "string", "minLength": 1},
			}, []string{FieldRawLaTeX, FieldError}),
		},
	}
}
