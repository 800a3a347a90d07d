package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-multiselect/components/multiselect"
	"github.com/goliatone/go-multiselect/pkg/renderers/tui"
	"github.com/goliatone/go-multiselect/pkg/selection"
)

func newPromptCmd(flags *globalFlags) *cobra.Command {
	var (
		output    string
		threshold int
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Choose values interactively in the terminal",
		Long: `Prompt for the widget selection in the terminal and print the result.
Large option lists ask for a search query first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.serverConfig()
			if err != nil {
				return err
			}
			widget, err := loadWidget(cfg)
			if err != nil {
				return err
			}
			src := staticSource(cfg, widget)
			prompter := tui.New(widget,
				tui.WithSource(src),
				tui.WithHandlers(multiselect.DefaultHandlers(widget, src)),
				tui.WithOutputFormat(tui.OutputFormat(output)),
				tui.WithSearchThreshold(threshold),
			)
			return runPrompt(cmd, prompter)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(tui.OutputFormatPrettyText), "output format: json, form or pretty")
	cmd.Flags().IntVar(&threshold, "search-threshold", tui.DefaultSearchThreshold, "option count above which a search query is asked first")
	return cmd
}

func runPrompt(cmd *cobra.Command, prompter *tui.Prompter) error {
	state, err := prompter.Run(cmd.Context(), selection.NewState(selection.FormData{}))
	if errors.Is(err, tui.ErrAborted) {
		return nil
	}
	if err != nil && !selection.IsHookError(err) {
		return err
	}
	body, outErr := prompter.Output(state)
	if outErr != nil {
		return outErr
	}
	if err := writeLine(cmd.OutOrStdout(), body); err != nil {
		return err
	}
	if err != nil {
		return fmt.Errorf("selection saved with errors: %w", err)
	}
	return nil
}

func writeLine(w io.Writer, body []byte) error {
	if _, err := w.Write(body); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
