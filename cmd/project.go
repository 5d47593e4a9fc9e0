package cmd

import "github.com/spf13/cobra"

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project-level workflows",
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new named project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool("create_project", map[string]interface{}{"name": args[0]})
	},
}

var projectSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current project",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		toolArgs := map[string]interface{}{}
		if path != "" {
			toolArgs["path"] = path
		}
		return runTool("save_project", toolArgs)
	},
}

var projectImportCmd = &cobra.Command{
	Use:   "import [midi-file]",
	Short: "Import a MIDI file into the current project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool("import_midi", map[string]interface{}{"path": args[0]})
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectSaveCmd)
	projectCmd.AddCommand(projectImportCmd)
	projectSaveCmd.Flags().String("path", "", "Save-as path (default: save in place)")
}
