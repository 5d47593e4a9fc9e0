package cmd

import "github.com/spf13/cobra"

var mixerCmd = &cobra.Command{
	Use:   "mixer",
	Short: "Mixer workflows",
}

var mixerVolumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Set a mixer track's volume fader",
	RunE: func(cmd *cobra.Command, args []string) error {
		track, _ := cmd.Flags().GetInt("track")
		volume, _ := cmd.Flags().GetFloat64("volume")
		return runTool("adjust_mixer_volume", map[string]interface{}{
			"track": track, "volume": volume,
		})
	},
}

func init() {
	rootCmd.AddCommand(mixerCmd)
	mixerCmd.AddCommand(mixerVolumeCmd)
	mixerVolumeCmd.Flags().Int("track", 0, "Mixer track index (0-based)")
	mixerVolumeCmd.Flags().Float64("volume", 0.8, "Volume in [0, 1]")
	_ = mixerVolumeCmd.MarkFlagRequired("track")
	_ = mixerVolumeCmd.MarkFlagRequired("volume")
}
