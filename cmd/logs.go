package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zhubert/threadchat/internal/logger"
)

var clearLogsCmd = &cobra.Command{
	Use:   "clear-logs",
	Short: "Remove the debug log",
	Args:  cobra.NoArgs,
	RunE:  runClearLogs,
}

func init() {
	rootCmd.AddCommand(clearLogsCmd)
}

func runClearLogs(cmd *cobra.Command, args []string) error {
	n, err := logger.ClearLogs()
	if err != nil {
		return fmt.Errorf("error clearing logs: %w", err)
	}
	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No log files found.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d log file(s).\n", n)
	return nil
}
