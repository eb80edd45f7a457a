package main

import (
	"fmt"
	"os"

	"github.com/aretw0/optirail"
	"github.com/aretw0/optirail/internal/cli"
	"github.com/aretw0/optirail/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var traceCmd = &cobra.Command{
	Use:   "trace <rail.yaml|rail.json|->",
	Short: "Trace rays through a rail file",
	Long: `Composes the rail described in the file and prints every element transfer,
the system matrix and the final ray states.

On a terminal the report is rendered as markdown; otherwise plain text is used.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, engine, err := setup(cmd)
		if err != nil {
			return err
		}

		req, err := cli.LoadRail(args[0])
		if err != nil {
			return err
		}

		res, err := engine.Trace(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("trace failed: %w", err)
		}

		format, _ := cmd.Flags().GetString("format")
		reporter := optirail.NewReporter(cmd.OutOrStdout(), optirail.Format(format))

		fd := int(os.Stdout.Fd())
		if format == "" && term.IsTerminal(fd) {
			reporter.Format = optirail.FormatMarkdown
			width, _, _ := term.GetSize(fd)
			if render, err := tui.NewRenderer(width); err == nil {
				reporter.Renderer = render
			}
		}

		return reporter.Write(req, res)
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().StringP("format", "f", "", "Output format: text, markdown or json (default: markdown on a terminal, text otherwise)")
}
