package source_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/source"
	"github.com/goliatone/go-multiselect/pkg/testsupport"
)

func TestDecodeYAML_Shapes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []option.Option
	}{
		{
			name: "sequence",
			doc: `
- Paris
- label: Berlin
  value: ber
- [Bern, 3]
- 42
`,
			want: []option.Option{
				{Label: "Paris", Value: "Paris"},
				{Label: "Berlin", Value: "ber"},
				{Label: "Bern", Value: 3},
				{Label: "42", Value: 42},
			},
		},
		{
			name: "wrapped",
			doc: `
options:
  - Lisbon
`,
			want: []option.Option{{Label: "Lisbon", Value: "Lisbon"}},
		},
		{
			name: "empty",
			doc:  "",
			want: []option.Option{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := source.DecodeYAML(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeYAML_RejectsScalars(t *testing.T) {
	if _, err := source.DecodeYAML(strings.NewReader("just a string")); err == nil {
		t.Fatalf("expected error for scalar document")
	}
}

func TestYAMLFile_Options(t *testing.T) {
	path := testsupport.WriteTempFile(t, "cities.yaml", "- Paris\n- Rome\n")

	got, err := source.YAMLFile{Path: path}.Options(context.Background())
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if diff := cmp.Diff([]string{"Paris", "Rome"}, option.Labels(got)); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	if _, err := source.LoadYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestStaticAndFromRaw(t *testing.T) {
	static := source.FromRaw("a", [2]string{"B", "b"})
	got, err := static.Options(context.Background())
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	got[0].Label = "mutated"

	again, _ := static.Options(context.Background())
	if again[0].Label != "a" {
		t.Fatalf("static source leaked its backing slice")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := static.Options(ctx); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}
