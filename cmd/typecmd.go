package cmd

import "github.com/spf13/cobra"

var typeCmd = &cobra.Command{
	Use:   "type [text]",
	Short: "Type text character by character",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delay, _ := cmd.Flags().GetInt("delay")
		return runTool("type_text", map[string]interface{}{
			"text": args[0], "delay": delay,
		})
	},
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.Flags().Int("delay", 0, "Inter-character delay in ms (0 = configured default)")
}
