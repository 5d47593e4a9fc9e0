package cmd

import "github.com/spf13/cobra"

var convertCmd = &cobra.Command{
	Use:   "convert [audio-file]",
	Short: "Transcribe an audio file to MIDI",
	Long:  "Run the Basic Pitch transcription backend on an audio file and print the resulting MIDI path.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir, _ := cmd.Flags().GetString("output-dir")
		toolArgs := map[string]interface{}{"audio": args[0]}
		if outputDir != "" {
			toolArgs["output_dir"] = outputDir
		}
		return runTool("convert_audio", toolArgs)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("output-dir", "", "Directory for the MIDI output (default: configured)")
}
