package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-multiselect/pkg/option"
)

// Extension keys holding display labels parallel to an enum.
const (
	ExtensionEnumLabels = "x-enum-labels"
	ExtensionEnumNames  = "x-enumNames"
)

// OpenAPIEnum reads options from an enum declared in an OpenAPI document.
// Schema names a component schema; Property, when set, selects one of its
// properties. Array schemas contribute their item enum.
type OpenAPIEnum struct {
	Data     []byte
	Path     string
	Schema   string
	Property string
}

// Options implements Source.
func (e OpenAPIEnum) Options(ctx context.Context) ([]option.Option, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loader := &openapi3.Loader{Context: ctx}
	var (
		doc *openapi3.T
		err error
	)
	switch {
	case len(e.Data) > 0:
		doc, err = loader.LoadFromData(e.Data)
	case e.Path != "":
		doc, err = loader.LoadFromFile(e.Path)
	default:
		return nil, errors.New("source: openapi document is required")
	}
	if err != nil {
		return nil, fmt.Errorf("source: load openapi document: %w", err)
	}

	schema, err := e.resolve(doc)
	if err != nil {
		return nil, err
	}
	return EnumOptions(schema), nil
}

func (e OpenAPIEnum) resolve(doc *openapi3.T) (*openapi3.Schema, error) {
	name := strings.TrimSpace(e.Schema)
	if name == "" {
		return nil, errors.New("source: openapi schema name is required")
	}
	if doc.Components == nil || doc.Components.Schemas == nil {
		return nil, fmt.Errorf("source: openapi schema %q not found", name)
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("source: openapi schema %q not found", name)
	}

	schema := ref.Value
	if property := strings.TrimSpace(e.Property); property != "" {
		propRef, ok := schema.Properties[property]
		if !ok || propRef == nil || propRef.Value == nil {
			return nil, fmt.Errorf("source: openapi property %s.%s not found", name, property)
		}
		schema = propRef.Value
	}
	if len(schema.Enum) == 0 && schema.Items != nil && schema.Items.Value != nil {
		schema = schema.Items.Value
	}
	if len(schema.Enum) == 0 {
		return nil, fmt.Errorf("source: openapi schema %q declares no enum", name)
	}
	return schema, nil
}

// EnumOptions converts a schema enum into options, pairing values with
// labels from x-enum-labels or x-enumNames when their lengths match.
func EnumOptions(schema *openapi3.Schema) []option.Option {
	if schema == nil {
		return []option.Option{}
	}
	labels := enumLabels(schema.Extensions, len(schema.Enum))
	values := make([]any, 0, len(schema.Enum))
	for idx, value := range schema.Enum {
		if labels != nil {
			values = append(values, option.Pair{Label: labels[idx], Value: value})
			continue
		}
		values = append(values, value)
	}
	return option.Normalize(values)
}

func enumLabels(extensions map[string]any, count int) []string {
	for _, key := range []string{ExtensionEnumLabels, ExtensionEnumNames} {
		raw, ok := extensions[key].([]any)
		if !ok || len(raw) != count {
			continue
		}
		labels := make([]string, count)
		for idx, item := range raw {
			labels[idx] = fmt.Sprint(item)
		}
		return labels
	}
	return nil
}
