package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/optirail/internal/cli"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <rail file>",
	Short: "Check a rail for consistency",
	Long:  `Traces the rail and reports the first element, parameter or ray that would reject it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, engine, err := setup(cmd)
		if err != nil {
			return err
		}

		req, err := cli.LoadRail(args[0])
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		if _, err := engine.Trace(cmd.Context(), req); err != nil {
			return fmt.Errorf("validation failed: %s", describe(err))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Rail is valid! ✅ (%d components, %d rays)\n", len(req.Components), len(req.Rays))
		return nil
	},
}

// describe renders a trace failure with its location.
func describe(err error) string {
	var te *domain.TraceError
	if !errors.As(err, &te) {
		return err.Error()
	}
	switch {
	case te.Index >= 0 && te.Param != "":
		return fmt.Sprintf("[%s] component %d (%s), param %q: %v", domain.Code(err), te.Index, te.Type, te.Param, te.Err)
	case te.Index >= 0:
		return fmt.Sprintf("[%s] component %d (%s): %v", domain.Code(err), te.Index, te.Type, te.Err)
	case te.Field != "":
		return fmt.Sprintf("[%s] %s: %v", domain.Code(err), te.Field, te.Err)
	}
	return fmt.Sprintf("[%s] %v", domain.Code(err), te.Err)
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
