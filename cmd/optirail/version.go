package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/optirail"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of optirail",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "optirail version %s\n", strings.TrimSpace(optirail.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
