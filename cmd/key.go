package cmd

import "github.com/spf13/cobra"

var keyCmd = &cobra.Command{
	Use:   "key [key]",
	Short: "Press and release a single key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool("key", map[string]interface{}{"key": args[0]})
	},
}

var hotkeyCmd = &cobra.Command{
	Use:   "hotkey [combo]",
	Short: "Press a key combination like ctrl+s",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool("hotkey", map[string]interface{}{"keys": args[0]})
	},
}

func init() {
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(hotkeyCmd)
}
