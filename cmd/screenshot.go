package cmd

import "github.com/spf13/cobra"

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the FL Studio window or a screen region to a PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		region, _ := cmd.Flags().GetString("region")
		scale, _ := cmd.Flags().GetFloat64("scale")
		outputPath, _ := cmd.Flags().GetString("output")

		toolArgs := map[string]interface{}{"scale": scale}
		if region != "" {
			toolArgs["region"] = region
		}
		if outputPath != "" {
			toolArgs["output"] = outputPath
		}
		return runTool("screenshot", toolArgs)
	},
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("region", "", "Screen region as 'x,y,w,h' (default: FL Studio window)")
	screenshotCmd.Flags().Float64("scale", 1, "Scale factor in (0, 1]")
	screenshotCmd.Flags().String("output", "", "Output file path (default: screenshot dir)")
}
