package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-multiselect/pkg/option"
)

// DecodeYAML reads options from r. The document is either a sequence of
// option entries or a mapping with an "options" sequence. Entries may be
// strings, {label, value} mappings, or two-item [label, value] sequences.
func DecodeYAML(r io.Reader) ([]option.Option, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []option.Option{}, nil
		}
		return nil, fmt.Errorf("source: decode yaml: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var entries []any
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&entries); err != nil {
			return nil, fmt.Errorf("source: decode yaml options: %w", err)
		}
	case yaml.MappingNode:
		var wrapper struct {
			Options []any `yaml:"options"`
		}
		if err := root.Decode(&wrapper); err != nil {
			return nil, fmt.Errorf("source: decode yaml options: %w", err)
		}
		entries = wrapper.Options
	default:
		return nil, fmt.Errorf("source: yaml options must be a sequence or mapping, line %d", root.Line)
	}

	return option.Normalize(entries), nil
}

// YAMLFile is a Source reading a YAML option file on every call.
type YAMLFile struct {
	Path string
}

// Options implements Source.
func (f YAMLFile) Options(ctx context.Context) ([]option.Option, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadYAML(f.Path)
}

// LoadYAML reads options from the YAML file at path.
func LoadYAML(path string) ([]option.Option, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer file.Close()
	return DecodeYAML(file)
}
