package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-multiselect/pkg/config"
	"github.com/goliatone/go-multiselect/pkg/render"
	"github.com/goliatone/go-multiselect/pkg/source"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	widgetFile   string
	optionsFile  string
	themeFile    string
	themeVariant string
	logFormat    string
	logLevel     string
}

func newRootCmd(version string) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:          "multiselect",
		Short:        "Type-ahead multi-select widgets",
		Long:         `Serve, render and prompt multi-select widgets described by a YAML widget configuration.`,
		Version:      version,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.widgetFile, "widget", "w", "",
		"widget configuration file (default: $MULTISELECT_WIDGET_FILE)")
	pf.StringVar(&flags.optionsFile, "options", "",
		"YAML option list overriding the widget options (default: $MULTISELECT_OPTIONS_FILE)")
	pf.StringVar(&flags.themeFile, "theme", "",
		"theme manifest file (default: $MULTISELECT_THEME_FILE)")
	pf.StringVar(&flags.themeVariant, "variant", "",
		"theme variant name")
	pf.StringVar(&flags.logFormat, "log-format", "",
		"log format: text or json")
	pf.StringVar(&flags.logLevel, "log-level", "",
		"log level: debug, info, warn or error")

	root.AddCommand(
		newServeCmd(flags),
		newRenderCmd(flags),
		newPromptCmd(flags),
	)
	return root
}

// serverConfig merges the environment configuration with explicit flags.
func (f *globalFlags) serverConfig() (config.Server, error) {
	cfg, err := config.ServerFromEnv()
	if err != nil {
		return config.Server{}, err
	}
	if f.widgetFile != "" {
		cfg.WidgetFile = f.widgetFile
	}
	if f.optionsFile != "" {
		cfg.OptionsFile = f.optionsFile
	}
	if f.themeFile != "" {
		cfg.ThemeFile = f.themeFile
	}
	if f.themeVariant != "" {
		cfg.ThemeVariant = f.themeVariant
	}
	if f.logFormat != "" {
		cfg.LogFormat = strings.ToLower(f.logFormat)
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Server{}, err
	}
	return cfg, nil
}

func loadWidget(cfg config.Server) (config.Widget, error) {
	if strings.TrimSpace(cfg.WidgetFile) == "" {
		return config.Widget{}, errors.New("missing widget configuration: pass --widget or set MULTISELECT_WIDGET_FILE")
	}
	return config.LoadWidget(cfg.WidgetFile)
}

// staticSource returns the option source for one-shot commands.
func staticSource(cfg config.Server, widget config.Widget) source.Source {
	if cfg.OptionsFile != "" {
		return source.YAMLFile{Path: cfg.OptionsFile}
	}
	return source.Static(widget.NormalizedOptions())
}

func loadTheme(cfg config.Server) (*theme.RendererConfig, error) {
	if cfg.ThemeFile == "" {
		return nil, nil
	}
	manifest, err := render.LoadThemeManifest(cfg.ThemeFile)
	if err != nil {
		return nil, err
	}
	return render.ThemeConfig(manifest, cfg.ThemeVariant), nil
}

func newLogger(w io.Writer, cfg config.Server) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
}
