package cmd

import "github.com/spf13/cobra"

var dragCmd = &cobra.Command{
	Use:   "drag",
	Short: "Press and drag from coordinates by a delta",
	Long:  "Press at window-relative coordinates and drag by (dx, dy). Used for faders and clip moves.",
	RunE: func(cmd *cobra.Command, args []string) error {
		x, _ := cmd.Flags().GetInt("x")
		y, _ := cmd.Flags().GetInt("y")
		dx, _ := cmd.Flags().GetInt("dx")
		dy, _ := cmd.Flags().GetInt("dy")
		duration, _ := cmd.Flags().GetInt("duration")
		absolute, _ := cmd.Flags().GetBool("absolute")

		return runTool("drag", map[string]interface{}{
			"x": x, "y": y, "dx": dx, "dy": dy, "duration": duration, "absolute": absolute,
		})
	},
}

func init() {
	rootCmd.AddCommand(dragCmd)
	dragCmd.Flags().Int("x", 0, "Start X coordinate")
	dragCmd.Flags().Int("y", 0, "Start Y coordinate")
	dragCmd.Flags().Int("dx", 0, "Horizontal delta in pixels")
	dragCmd.Flags().Int("dy", 0, "Vertical delta in pixels")
	dragCmd.Flags().Int("duration", 500, "Drag duration in ms")
	dragCmd.Flags().Bool("absolute", false, "Treat coordinates as screen-absolute")
	_ = dragCmd.MarkFlagRequired("x")
	_ = dragCmd.MarkFlagRequired("y")
	_ = dragCmd.MarkFlagRequired("dx")
	_ = dragCmd.MarkFlagRequired("dy")
}
