package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pageseg %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
