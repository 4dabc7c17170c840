package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/miosa/osa-grid/logging"
	"github.com/miosa/osa-grid/rpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Drive the virtualizer over JSON-RPC on stdin/stdout",
	Long: `serve reads one JSON request per line from stdin and writes one response
per line to stdout. Logs go to stderr.

Methods: ping, configure, scroll, resize, set_count, reorder, toggle_sort,
measure, scroll_to_index, virtual_items, total_size, state, rows.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	level := "info"
	if cmd.Flags().Changed("log-level") {
		level = flags.logLevel
	}
	logger := logging.New(os.Stderr, level)

	srv := rpc.NewServer(cmd.OutOrStdout(), logger)
	return srv.Serve(cmd.Context(), cmd.InOrStdin())
}
