package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/dawctl/dawctl/internal/automation"
	"github.com/dawctl/dawctl/internal/midi"
	"github.com/dawctl/dawctl/internal/platform"
)

// Config holds tool server configuration.
type Config struct {
	Transport string
	Port      int
	// MaxActionsPerSecond throttles dispatched actions; zero disables the
	// limiter.
	MaxActionsPerSecond float64
	// FindRetry bounds image-search attempts before a find_image or
	// click_image call gives up. Zero value selects the default policy.
	FindRetry automation.Policy
}

// Deps are the wired subsystems the tool handlers execute against.
type Deps struct {
	Provider  *platform.Provider
	Engine    *automation.Engine
	Workflows *automation.Workflows
	Matcher   *automation.Matcher
	Converter *midi.Converter
	Logger    *slog.Logger
}

// handler executes one tool call and returns its result payload. Handlers
// perform argument validation before touching any backend, so malformed
// requests never reach the OS input layer.
type handler func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error)

// ToolDescriptor is the protocol-independent view of a registered tool,
// consumed by the agent layer to advertise tools to an LLM.
type ToolDescriptor struct {
	Name        string
	Description string
	Schema      map[string]interface{}
}

// Server exposes the automation engine as MCP tools. All mutating handlers
// run under one mutex: the target application has a single input focus, and
// interleaved injections from concurrent tool calls would corrupt both
// actions.
type Server struct {
	provider   *platform.Provider
	eng        *automation.Engine
	wf         *automation.Workflows
	matcher    *automation.Matcher
	conv       *midi.Converter
	log        *slog.Logger
	mcp        *mcpserver.MCPServer
	limiter    *rate.Limiter
	findPolicy automation.Policy
	dispatchMu sync.Mutex

	handlers    map[string]handler
	descriptors []ToolDescriptor
}

// New creates the tool server and registers all tools.
func New(deps Deps, cfg Config) *Server {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	s := &Server{
		provider: deps.Provider,
		eng:      deps.Engine,
		wf:       deps.Workflows,
		matcher:  deps.Matcher,
		conv:     deps.Converter,
		log:      log,
		handlers: make(map[string]handler),
	}
	if cfg.MaxActionsPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.MaxActionsPerSecond), 1)
	}
	s.findPolicy = cfg.FindRetry
	if s.findPolicy == (automation.Policy{}) {
		s.findPolicy = automation.DefaultPolicy()
	}

	s.mcp = mcpserver.NewMCPServer("dawctl", "1.0.0", mcpserver.WithResourceCapabilities(false, false))
	s.registerTools()
	s.registerResources()
	return s
}

// Serve starts the server on the configured transport and blocks.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// Result is the envelope every tool call returns, serialized as YAML text.
type Result struct {
	OK         bool                   `yaml:"ok"                   json:"ok"`
	Action     string                 `yaml:"action"               json:"action"`
	Error      string                 `yaml:"error,omitempty"      json:"error,omitempty"`
	Kind       string                 `yaml:"kind,omitempty"       json:"kind,omitempty"`
	Screenshot string                 `yaml:"screenshot,omitempty" json:"screenshot,omitempty"`
	Data       map[string]interface{} `yaml:"data,omitempty"       json:"data,omitempty"`
}

// resultToText serializes a Result to YAML for the MCP response body.
func resultToText(result Result) string {
	b, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Sprintf("ok: %v\naction: %s\nerror: %s", result.OK, result.Action, result.Error)
	}
	return string(b)
}

// Dispatch runs a registered tool by name under the serialization mutex and
// rate limiter. Both the MCP transport and the embedded agent go through
// here, so a tool behaves identically regardless of who called it.
func (s *Server) Dispatch(ctx context.Context, name string, args map[string]interface{}) Result {
	h, ok := s.handlers[name]
	if !ok {
		return Result{Action: name, Error: fmt.Sprintf("unknown tool: %s", name), Kind: string(automation.KindValidation)}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return Result{Action: name, Error: err.Error(), Kind: string(automation.KindTimeout)}
		}
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.log.Info("dispatching tool", "tool", name)
	data, err := h(ctx, args)
	if err != nil {
		res := Result{Action: name, Error: err.Error(), Kind: string(automation.KindOf(err)), Data: data}
		var f *automation.Failure
		if errors.As(err, &f) {
			res.Screenshot = f.Screenshot
		}
		s.log.Warn("tool failed", "tool", name, "kind", res.Kind, "error", err)
		return res
	}
	return Result{OK: true, Action: name, Data: data}
}

// Descriptors returns the registered tools in a transport-independent form.
func (s *Server) Descriptors() []ToolDescriptor {
	out := make([]ToolDescriptor, len(s.descriptors))
	copy(out, s.descriptors)
	return out
}

// register wires one tool into both the MCP server and the dispatch table.
// Keeping a single registration point guarantees the advertised schema and
// the dispatchable handler can never drift apart.
func (s *Server) register(tool mcp.Tool, h handler) {
	s.handlers[tool.Name] = h
	s.descriptors = append(s.descriptors, ToolDescriptor{
		Name:        tool.Name,
		Description: tool.Description,
		Schema: map[string]interface{}{
			"type":       tool.InputSchema.Type,
			"properties": tool.InputSchema.Properties,
			"required":   tool.InputSchema.Required,
		},
	})

	s.mcp.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := s.Dispatch(ctx, tool.Name, request.GetArguments())
		text := resultToText(res)
		if !res.OK {
			return mcp.NewToolResultError(text), nil
		}
		return mcp.NewToolResultText(text), nil
	})
}
