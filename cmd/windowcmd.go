package cmd

import "github.com/spf13/cobra"

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Bring the FL Studio window to the foreground",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool("focus_window", nil)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible top-level windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool("list_windows", nil)
	},
}

func init() {
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(listCmd)
}
