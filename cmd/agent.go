package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dawctl/dawctl/internal/agent"
	"github.com/dawctl/dawctl/internal/llm"
	"github.com/dawctl/dawctl/internal/output"
	"github.com/dawctl/dawctl/internal/server"
)

var agentCmd = &cobra.Command{
	Use:   "agent [prompt...]",
	Short: "Run a natural-language request through a local LLM",
	Long: `Send a request to the configured LLM provider and let it drive FL Studio
through the same tools the MCP server exposes.

Examples:
  dawctl agent "create a project called demo and save it"
  dawctl agent --model llama3.1 "set mixer track 2 to half volume"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAgent,
}

func init() {
	rootCmd.AddCommand(agentCmd)
	agentCmd.Flags().String("provider", "", "LLM provider: ollama, openai (default: configured)")
	agentCmd.Flags().String("model", "", "Model name (default: configured)")
	agentCmd.Flags().String("base-url", "", "Provider base URL (default: configured)")
	agentCmd.Flags().Int("max-turns", 0, "Max model round-trips per request")
}

func runAgent(cmd *cobra.Command, args []string) error {
	provider, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	baseURL, _ := cmd.Flags().GetString("base-url")
	maxTurns, _ := cmd.Flags().GetInt("max-turns")

	if provider == "" {
		provider = cfg.LLMProvider
	}
	if model == "" {
		model = cfg.LLMModel
	}
	if baseURL == "" {
		baseURL = cfg.LLMBaseURL
	}

	client, err := llm.New(llm.Config{
		Provider: provider,
		Model:    model,
		BaseURL:  baseURL,
	})
	if err != nil {
		return err
	}

	srv, err := newServer(server.Config{})
	if err != nil {
		return err
	}

	eng := agent.New(client, srv, agent.Options{MaxTurns: maxTurns}, logger)
	reply, err := eng.Run(context.Background(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("agent run: %w", err)
	}

	return output.Print(map[string]interface{}{"reply": reply})
}
