package cmd

import "github.com/spf13/cobra"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start playback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool("start_playback", nil)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop playback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool("stop_playback", nil)
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last action",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool("undo", nil)
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the last undone action",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool("redo", nil)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
}
