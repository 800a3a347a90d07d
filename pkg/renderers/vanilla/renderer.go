package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-multiselect/pkg/render"
	rendertemplate "github.com/goliatone/go-multiselect/pkg/render/template"
	gotemplate "github.com/goliatone/go-multiselect/pkg/render/template/gotemplate"
	"github.com/goliatone/go-multiselect/pkg/renderers/vanilla/components"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	stylesheetURL    string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponents replaces the component registry.
func WithComponents(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithStylesheetURL links the stylesheet from url in page output instead of
// inlining the embedded copy.
func WithStylesheetURL(url string) Option {
	return func(cfg *config) {
		cfg.stylesheetURL = url
		cfg.inlineStyles = url == ""
	}
}

// Renderer produces HTML for widget views.
type Renderer struct {
	templates     rendertemplate.TemplateRenderer
	components    *components.Registry
	stylesheetURL string
	inlineStyles  bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineStyles: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:     renderer,
		components:    cfg.components,
		stylesheetURL: cfg.stylesheetURL,
		inlineStyles:  cfg.inlineStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the widget fragment, or a full page when options.Page is set.
func (r *Renderer) Render(_ context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	view = view.WithOptions(options)
	name := components.ForView(view)
	descriptor, ok := r.components.Descriptor(name)
	if !ok {
		return nil, fmt.Errorf("vanilla renderer: component %q not registered", name)
	}

	themeCtx := render.BuildThemeContext(options.Theme)
	var body bytes.Buffer
	err := descriptor.Renderer(&body, view, components.ComponentData{
		Template:      r.templates,
		ThemePartials: themeCtx.Partials,
		Classes:       resolveClasses(view.Classes),
		Theme:         themeCtx,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render %s: %w", name, err)
	}
	if !options.Page {
		return body.Bytes(), nil
	}

	stylesheets, scripts := r.components.Assets([]string{name})
	inline := ""
	if href := render.AssetURL(options.Theme, StylesheetName, r.stylesheetURL); href != "" {
		stylesheets = append([]string{href}, stylesheets...)
	} else if r.inlineStyles {
		inline = defaultStylesheet()
	}

	result, err := r.templates.RenderTemplate("templates/page.tmpl", map[string]any{
		"view":          view,
		"locale":        options.Locale,
		"theme":         themeCtx,
		"stylesheets":   stylesheets,
		"scripts":       scriptContext(scripts),
		"inline_styles": inline,
		"body":          body.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(result), nil
}

func scriptContext(scripts []components.Script) []map[string]any {
	if len(scripts) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(scripts))
	for _, script := range scripts {
		out = append(out, map[string]any{
			"src":    script.Src,
			"inline": script.Inline,
			"module": script.Module,
			"defer":  script.Defer,
		})
	}
	return out
}
