package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List the component library",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, engine, err := setup(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(engine.Components())
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TYPE\tLABEL\tPARAMETERS")
		for _, ct := range engine.Components() {
			params := make([]string, 0, len(ct.Params))
			for _, p := range ct.Params {
				params = append(params, p.Name+"="+strconv.FormatFloat(p.Default, 'g', -1, 64))
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", ct.Name, ct.Label, strings.Join(params, " "))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(componentsCmd)
	componentsCmd.Flags().Bool("json", false, "Print the library as JSON")
}
