package cmd

import "github.com/spf13/cobra"

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch FL Studio and wait for its window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool("launch", nil)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the FL Studio process",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool("close", nil)
	},
}

func init() {
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(closeCmd)
}
