// Package agent runs a tool-calling loop between an LLM and the tool
// server, so natural-language requests drive the same dispatch path as MCP
// clients.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/dawctl/dawctl/internal/llm"
	"github.com/dawctl/dawctl/internal/server"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Dispatcher executes tool calls. Satisfied by *server.Server, which runs
// every call under the same mutex and rate limiter as MCP traffic.
type Dispatcher interface {
	Descriptors() []server.ToolDescriptor
	Dispatch(ctx context.Context, name string, args map[string]interface{}) server.Result
}

// Options tunes the agent loop.
type Options struct {
	// MaxTurns bounds the model round-trips per request. Desktop automation
	// failures tend to repeat; a runaway loop would keep injecting input.
	MaxTurns int
	// SystemPrompt overrides the built-in prompt when non-empty.
	SystemPrompt string
}

const defaultMaxTurns = 16

// chatRetries is how many extra chat attempts a transient transport error
// gets. Local inference servers drop connections while loading a model.
const chatRetries = 2

const defaultSystemPrompt = `You are a DAW automation assistant. You control FL Studio on the user's desktop through the provided tools.
Screen interactions are slow and cannot be undone reliably; prefer the high-level project tools (create_project, save_project, adjust_mixer_volume, import_midi) over raw clicks when one fits.
Coordinates in click/drag/move_mouse are relative to the DAW window. After a failed action, check the returned error kind before retrying.
When you are done, reply with a short summary of what you did.`

// Engine is a single-conversation agent.
type Engine struct {
	client llm.Client
	disp   Dispatcher
	opts   Options
	log    *slog.Logger

	chatRetryDelay time.Duration
}

// New creates an agent engine over a chat client and a tool dispatcher.
func New(client llm.Client, disp Dispatcher, opts Options, log *slog.Logger) *Engine {
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = defaultMaxTurns
	}
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = defaultSystemPrompt
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{client: client, disp: disp, opts: opts, log: log, chatRetryDelay: time.Second}
}

// Run executes one user request to completion and returns the model's final
// text reply.
func (e *Engine) Run(ctx context.Context, prompt string) (string, error) {
	specs := e.toolSpecs()
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: e.opts.SystemPrompt},
		{Role: llm.RoleUser, Content: prompt},
	}

	for turn := 1; turn <= e.opts.MaxTurns; turn++ {
		resp, err := e.chat(ctx, messages, specs)
		if err != nil {
			return "", fmt.Errorf("chat turn %d: %w", turn, err)
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Content, nil
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, tc := range resp.ToolCalls {
			messages = append(messages, e.executeCall(ctx, tc))
		}
	}

	return "", fmt.Errorf("agent did not finish within %d turns", e.opts.MaxTurns)
}

// chat calls the model, retrying errors the provider reports as transient.
// Permanent errors abort immediately.
func (e *Engine) chat(ctx context.Context, messages []llm.Message, specs []llm.ToolSpec) (*llm.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= chatRetries; attempt++ {
		if attempt > 0 {
			e.log.Warn("retrying chat after transient error", "attempt", attempt, "error", lastErr)
			select {
			case <-time.After(e.chatRetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := e.client.Chat(ctx, messages, specs)
		if err == nil {
			return resp, nil
		}
		if !e.client.IsTransientError(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("chat failed after %d attempts: %w", chatRetries+1, lastErr)
}

// executeCall dispatches one tool call and wraps its result as a tool
// message. Argument decode errors are reported back to the model rather than
// aborting the run, so it can correct itself.
func (e *Engine) executeCall(ctx context.Context, tc llm.ToolCall) llm.Message {
	e.log.Info("agent tool call", "tool", tc.Name, "id", tc.ID)

	var args map[string]interface{}
	if tc.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			return toolMessage(tc.ID, server.Result{
				Action: tc.Name,
				Error:  fmt.Sprintf("arguments are not valid JSON: %v", err),
				Kind:   "validation",
			})
		}
	}

	return toolMessage(tc.ID, e.disp.Dispatch(ctx, tc.Name, args))
}

func toolMessage(callID string, res server.Result) llm.Message {
	b, err := json.Marshal(res)
	if err != nil {
		b = []byte(fmt.Sprintf(`{"ok":false,"error":%q}`, err.Error()))
	}
	return llm.Message{
		Role:       llm.RoleTool,
		ToolCallID: callID,
		Content:    string(b),
	}
}

func (e *Engine) toolSpecs() []llm.ToolSpec {
	descs := e.disp.Descriptors()
	specs := make([]llm.ToolSpec, 0, len(descs))
	for _, d := range descs {
		specs = append(specs, llm.ToolSpec{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  d.Schema,
		})
	}
	return specs
}
