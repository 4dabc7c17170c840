package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miosa/osa-grid/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "osa-grid %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
