package source_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/source"
)

const enumDocument = `{
  "openapi": "3.0.3",
  "info": {"title": "Cities", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Region": {
        "type": "string",
        "enum": ["eu", "us"],
        "x-enum-labels": ["Europe", "United States"]
      },
      "Trip": {
        "type": "object",
        "properties": {
          "stops": {
            "type": "array",
            "items": {"type": "string", "enum": ["ber", "par"]}
          },
          "seats": {"type": "integer", "enum": [1, 2]}
        }
      }
    }
  }
}`

func TestOpenAPIEnum_Options(t *testing.T) {
	tests := []struct {
		name   string
		source source.OpenAPIEnum
		labels []string
		keys   []string
	}{
		{
			name:   "labelled schema enum",
			source: source.OpenAPIEnum{Data: []byte(enumDocument), Schema: "Region"},
			labels: []string{"Europe", "United States"},
			keys:   []string{"eu", "us"},
		},
		{
			name:   "array property items",
			source: source.OpenAPIEnum{Data: []byte(enumDocument), Schema: "Trip", Property: "stops"},
			labels: []string{"ber", "par"},
			keys:   []string{"ber", "par"},
		},
		{
			name:   "numeric enum",
			source: source.OpenAPIEnum{Data: []byte(enumDocument), Schema: "Trip", Property: "seats"},
			labels: []string{"1", "2"},
			keys:   []string{"1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.source.Options(context.Background())
			if err != nil {
				t.Fatalf("options: %v", err)
			}
			if diff := cmp.Diff(tt.labels, option.Labels(got)); diff != "" {
				t.Fatalf("labels mismatch (-want +got):\n%s", diff)
			}
			keys := make([]string, 0, len(got))
			for _, opt := range got {
				keys = append(keys, opt.Key())
			}
			if diff := cmp.Diff(tt.keys, keys); diff != "" {
				t.Fatalf("keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOpenAPIEnum_Errors(t *testing.T) {
	cases := map[string]source.OpenAPIEnum{
		"no document":      {Schema: "Region"},
		"no schema name":   {Data: []byte(enumDocument)},
		"unknown schema":   {Data: []byte(enumDocument), Schema: "Missing"},
		"unknown property": {Data: []byte(enumDocument), Schema: "Trip", Property: "nope"},
		"no enum":          {Data: []byte(enumDocument), Schema: "Trip"},
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := src.Options(context.Background()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
