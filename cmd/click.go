package cmd

import "github.com/spf13/cobra"

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click at coordinates in the FL Studio window",
	Long:  "Click at window-relative coordinates (or screen-absolute with --absolute).",
	RunE: func(cmd *cobra.Command, args []string) error {
		x, _ := cmd.Flags().GetInt("x")
		y, _ := cmd.Flags().GetInt("y")
		button, _ := cmd.Flags().GetString("button")
		double, _ := cmd.Flags().GetBool("double")
		absolute, _ := cmd.Flags().GetBool("absolute")

		return runTool("click", map[string]interface{}{
			"x": x, "y": y, "button": button, "double": double, "absolute": absolute,
		})
	},
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().Int("x", 0, "X coordinate")
	clickCmd.Flags().Int("y", 0, "Y coordinate")
	clickCmd.Flags().String("button", "left", "Mouse button: left, right, middle")
	clickCmd.Flags().Bool("double", false, "Double-click")
	clickCmd.Flags().Bool("absolute", false, "Treat coordinates as screen-absolute")
	_ = clickCmd.MarkFlagRequired("x")
	_ = clickCmd.MarkFlagRequired("y")
}
