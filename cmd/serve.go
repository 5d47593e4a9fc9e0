package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dawctl/dawctl/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing dawctl tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes all dawctl
operations as tools. AI agents can call tools directly without shell
overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  dawctl serve
  dawctl serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Float64("rate", 5, "Max dispatched actions per second (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	rate, _ := cmd.Flags().GetFloat64("rate")

	srvCfg := server.Config{
		Transport:           transport,
		Port:                port,
		MaxActionsPerSecond: rate,
	}

	srv, err := newServer(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	logger.Info("serving MCP tools", "transport", transport, "port", port)
	return srv.Serve(srvCfg)
}
