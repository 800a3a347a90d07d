package render

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSONRenderer emits the view as JSON for client runtimes.
type JSONRenderer struct {
	Indent bool
}

var _ Renderer = JSONRenderer{}

func (JSONRenderer) Name() string {
	return "json"
}

func (JSONRenderer) ContentType() string {
	return "application/json"
}

func (r JSONRenderer) Render(_ context.Context, view View, options RenderOptions) ([]byte, error) {
	view = view.WithOptions(options)
	var (
		payload []byte
		err     error
	)
	if r.Indent {
		payload, err = json.MarshalIndent(view, "", "  ")
	} else {
		payload, err = json.Marshal(view)
	}
	if err != nil {
		return nil, fmt.Errorf("render: encode view: %w", err)
	}
	return payload, nil
}
