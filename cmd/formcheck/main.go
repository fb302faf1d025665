// Command formcheck validates a form state against declarative field rules.
//
//	formcheck --config form.yaml --state state.json --set name=Alice --set age=30
//
// The state is loaded into an in-memory store, --set values are applied as
// value changes, and the form is submitted. A valid form prints its state
// as JSON; an invalid form prints one "path: error" line per field and
// exits with status 1.
//
// With --draft-dir and --draft the last valid state is kept as a named draft
// and reloaded by the next run that has no --state.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "formcheck",
		Short:         "Validate a form state against configured rules",
		Long:          `formcheck loads a form configuration and a state document, applies --set overrides, and submits the form. It exits with status 1 when validation fails.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Path to form config file, JSON or YAML (required)")
	flags.StringVarP(&opts.stateFile, "state", "s", "", "Path to initial state file, JSON or YAML")
	flags.StringArrayVar(&opts.sets, "set", nil, "Value change as path=value; value is parsed as JSON, else taken as a string, and null unsets the field (repeatable)")
	flags.StringVar(&opts.draftDir, "draft-dir", "", "Directory holding saved drafts")
	flags.StringVar(&opts.draft, "draft", "", "Draft name; loaded when --state is not given and saved whenever the form is valid")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log form and store events to stderr")
	flags.StringVar(&opts.logLevel, "log-level", "", "Lowest level logged with --verbose: verbose, info, warn or error (default verbose)")
	flags.BoolVar(&opts.metrics, "metrics", false, "Write Prometheus metrics in text format to stderr on exit")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
