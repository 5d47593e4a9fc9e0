package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dawctl/dawctl/internal/config"
	"github.com/dawctl/dawctl/internal/logging"
	"github.com/dawctl/dawctl/internal/output"
	"github.com/dawctl/dawctl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "dawctl",
	Short: "Drive FL Studio from the command line or an MCP agent",
	Long: `dawctl automates FL Studio through OS-level input injection and screen
capture. It exposes the same operations as CLI commands and as MCP tools
for AI agents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// cfg and logger are initialized in PersistentPreRunE and shared by all
// commands.
var (
	cfg    config.Config
	logger *slog.Logger
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file overlaying environment variables")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		configPath, _ := rootCmd.PersistentFlags().GetString("config")
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger = logging.New(cfg.LogLevel)

		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, _ := rootCmd.PersistentFlags().GetBool("pretty"); pretty {
			output.PrettyOutput = true
		}
		return nil
	}
}
