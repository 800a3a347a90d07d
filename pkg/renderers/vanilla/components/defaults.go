package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-multiselect/pkg/render"
)

const (
	templatePrefix = "templates/components/"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the vanilla renderer.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameMultiselect, Descriptor{
		Renderer: templateComponentRenderer(PartialMultiselect, templatePrefix+"multiselect.tmpl"),
	})
	registry.MustRegister(NameReadonly, Descriptor{
		Renderer: templateComponentRenderer(PartialReadonly, templatePrefix+"readonly.tmpl"),
	})

	return registry
}

// ForView picks the component that renders view.
func ForView(view render.View) string {
	if view.Disabled {
		return NameReadonly
	}
	return NameMultiselect
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, view render.View, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolvedTemplate := templateName
		if data.ThemePartials != nil {
			if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
				resolvedTemplate = candidate
			}
		}

		payload := map[string]any{
			"view":    view,
			"classes": data.Classes,
			"theme":   data.Theme,
		}
		rendered, err := data.Template.RenderTemplate(resolvedTemplate, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolvedTemplate, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
