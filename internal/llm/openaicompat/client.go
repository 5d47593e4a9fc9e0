// Package openaicompat backs the agent with any OpenAI-compatible endpoint,
// which covers local servers like LM Studio and llama.cpp alongside the
// hosted API.
package openaicompat

import (
	"context"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"

	"github.com/dawctl/dawctl/internal/llm"
)

// Client wraps the official OpenAI Go SDK.
type Client struct {
	client   *openai.Client
	provider string
	model    string
}

// NewClient creates a client. baseURL redirects requests to a compatible
// local server; apiKey may be a placeholder for servers that ignore it.
func NewClient(provider, apiKey, model, baseURL string) (*Client, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &Client{client: &client, provider: provider, model: model}, nil
}

func (c *Client) Provider() string {
	return c.provider
}

// Chat runs one non-streaming completion turn through the Responses API.
func (c *Client) Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolSpec) (*llm.Response, error) {
	params := responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: convertMessages(messages),
		},
	}
	if converted := convertTools(tools); len(converted) > 0 {
		params.Tools = converted
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return nil, err
	}

	out := &llm.Response{Content: resp.OutputText()}
	for _, item := range resp.Output {
		if item.Type != "function_call" {
			continue
		}
		id := item.CallID
		if id == "" {
			id = item.ID
		}
		out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
			ID:   id,
			Name: item.Name,
			Function: llm.FunctionCall{
				Name:      item.Name,
				Arguments: item.Arguments,
			},
		})
	}
	return out, nil
}

func convertMessages(messages []llm.Message) []responses.ResponseInputItemUnionParam {
	items := make([]responses.ResponseInputItemUnionParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			items = append(items, responses.ResponseInputItemParamOfMessage(
				m.Content,
				responses.EasyInputMessageRoleSystem,
			))
		case llm.RoleUser:
			items = append(items, responses.ResponseInputItemParamOfMessage(
				m.Content,
				responses.EasyInputMessageRoleUser,
			))
		case llm.RoleAssistant:
			if m.Content != "" {
				items = append(items, responses.ResponseInputItemParamOfMessage(
					m.Content,
					responses.EasyInputMessageRoleAssistant,
				))
			}
			for _, tc := range m.ToolCalls {
				items = append(items, responses.ResponseInputItemParamOfFunctionCall(
					tc.Function.Arguments,
					tc.ID,
					tc.Name,
				))
			}
		case llm.RoleTool:
			items = append(items, responses.ResponseInputItemParamOfFunctionCallOutput(
				m.ToolCallID,
				m.Content,
			))
		}
	}
	return items
}

func convertTools(tools []llm.ToolSpec) []responses.ToolUnionParam {
	var out []responses.ToolUnionParam
	for _, t := range tools {
		out = append(out, responses.ToolUnionParam{
			OfFunction: &responses.FunctionToolParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}

// IsTransientError implements the llm.Client interface.
func (c *Client) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") {
		return true
	}
	return strings.Contains(msg, "500 internal") ||
		strings.Contains(msg, "502 bad gateway") ||
		strings.Contains(msg, "503 service unavailable") ||
		strings.Contains(msg, "overloaded")
}

func init() {
	llm.RegisterProvider("openai", func(cfg llm.Config) (llm.Client, error) {
		return NewClient("openai", cfg.APIKey, cfg.Model, cfg.BaseURL)
	})
}
