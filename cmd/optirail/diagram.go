package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/optirail/internal/cli"
	"github.com/aretw0/optirail/internal/presentation/diagram"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/spf13/cobra"
)

// diagramCmd represents the diagram command
var diagramCmd = &cobra.Command{
	Use:   "diagram <rail file>",
	Short: "Export the rail as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of the rail. With --check the rail is
traced first and the element that rejects it is highlighted.`,
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

		var overlay *diagram.Overlay
		if check, _ := cmd.Flags().GetBool("check"); check {
			overlay = &diagram.Overlay{Failed: failedIndex(engine.Trace(context.Background(), req))}
		}

		fmt.Fprint(cmd.OutOrStdout(), diagram.GenerateMermaid(engine.Catalog(), req.Components, overlay))
		return nil
	},
}

func failedIndex(_ *domain.TraceResult, err error) int {
	var te *domain.TraceError
	if errors.As(err, &te) {
		return te.Index
	}
	return -1
}

func init() {
	rootCmd.AddCommand(diagramCmd)
	diagramCmd.Flags().Bool("check", false, "Trace the rail and highlight the failing element")
}
