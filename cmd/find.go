package cmd

import "github.com/spf13/cobra"

var findCmd = &cobra.Command{
	Use:   "find [image]",
	Short: "Locate a reference image on screen",
	Long:  "Template-match a reference PNG/JPEG against the FL Studio window and print the match center and confidence.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		region, _ := cmd.Flags().GetString("region")
		click, _ := cmd.Flags().GetBool("click")

		toolArgs := map[string]interface{}{"path": args[0], "threshold": threshold}
		if region != "" {
			toolArgs["region"] = region
		}
		tool := "find_image"
		if click {
			tool = "click_image"
		}
		return runTool(tool, toolArgs)
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().Float64("threshold", 0, "Confidence threshold in [0, 1] (0 = configured default)")
	findCmd.Flags().String("region", "", "Search region as 'x,y,w,h'")
	findCmd.Flags().Bool("click", false, "Click the center of the match when found")
}
