package ollama

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/ollama/ollama/api"

	"github.com/dawctl/dawctl/internal/llm"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to a local Ollama daemon.
type Client struct {
	client  *api.Client
	model   string
	options map[string]any
}

// NewClient creates an Ollama client. Local models can take minutes to load
// and generate, so the HTTP client carries no response timeout.
func NewClient(model, baseURL string, options map[string]any) (*Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	httpClient := &http.Client{Transport: transport, Timeout: 0}

	var client *api.Client
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
		client = api.NewClient(u, httpClient)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, err
		}
	}

	slog.Info("ollama client initialized", "model", model, "base_url", baseURL)
	return &Client{client: client, model: model, options: options}, nil
}

func (c *Client) Provider() string {
	return "ollama"
}

// Chat runs one non-streaming completion turn.
func (c *Client) Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolSpec) (*llm.Response, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: convertMessages(messages),
		Tools:    convertTools(tools),
		Options:  c.options,
		Stream:   &stream,
	}

	resp := &llm.Response{}
	err := c.client.Chat(ctx, req, func(r api.ChatResponse) error {
		resp.Content += r.Message.Content
		for _, tc := range r.Message.ToolCalls {
			argsB, err := json.Marshal(tc.Function.Arguments)
			if err != nil {
				slog.Warn("could not marshal tool call arguments", "provider", "ollama", "error", err)
				argsB = []byte("{}")
			}
			resp.ToolCalls = append(resp.ToolCalls, llm.ToolCall{
				ID:   tc.ID,
				Name: tc.Function.Name,
				Function: llm.FunctionCall{
					Name:      tc.Function.Name,
					Arguments: string(argsB),
				},
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama chat: %w", err)
	}
	return resp, nil
}

func convertMessages(messages []llm.Message) []api.Message {
	out := make([]api.Message, 0, len(messages))
	for _, m := range messages {
		msg := api.Message{
			Role:    m.Role,
			Content: m.Content,
		}
		if m.Role == llm.RoleAssistant && len(m.ToolCalls) > 0 {
			for _, tc := range m.ToolCalls {
				// Round-trip the JSON argument string into the SDK's
				// argument type.
				var apiArgs api.ToolCallFunctionArguments
				if err := json.Unmarshal([]byte(tc.Function.Arguments), &apiArgs); err != nil {
					slog.Warn("could not convert tool arguments for history", "provider", "ollama", "error", err)
				}
				msg.ToolCalls = append(msg.ToolCalls, api.ToolCall{
					ID: tc.ID,
					Function: api.ToolCallFunction{
						Name:      tc.Function.Name,
						Arguments: apiArgs,
					},
				})
			}
		}
		if m.Role == llm.RoleTool {
			msg.ToolCallID = m.ToolCallID
		}
		out = append(out, msg)
	}
	return out
}

// convertTools maps tool specs into the SDK's tool type through JSON, which
// sidesteps the SDK's nested parameter struct types.
func convertTools(tools []llm.ToolSpec) []api.Tool {
	if len(tools) == 0 {
		return nil
	}
	generic := make([]map[string]any, 0, len(tools))
	for _, t := range tools {
		generic = append(generic, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        t.Name,
				"description": t.Description,
				"parameters":  t.Parameters,
			},
		})
	}

	var apiTools []api.Tool
	rawB, err := json.Marshal(generic)
	if err != nil {
		slog.Error("could not marshal tools", "provider", "ollama", "error", err)
		return nil
	}
	if err := json.Unmarshal(rawB, &apiTools); err != nil {
		slog.Error("could not unmarshal tools to api.Tool", "provider", "ollama", "error", err)
		return nil
	}
	return apiTools
}

// IsTransientError implements the llm.Client interface.
func (c *Client) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "connection reset") {
		return true
	}
	return strings.Contains(msg, "overloaded")
}

func init() {
	llm.RegisterProvider("ollama", func(cfg llm.Config) (llm.Client, error) {
		return NewClient(cfg.Model, cfg.BaseURL, cfg.Options)
	})
}
