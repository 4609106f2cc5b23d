package llm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"

	"mindcare/support-chat/config"
	"mindcare/support-chat/types"
)

// CompletionRequest is one chat completions call. Zero sampling fields fall
// back to the client's configured defaults.
type CompletionRequest struct {
	Messages    []types.ChatMessage
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Completer is anything that can turn a conversation into a completion.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*types.Completion, error)
}

// Options configures a Mistral client.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// OptionsFromSettings maps server settings onto client options.
func OptionsFromSettings(s config.Settings) Options {
	return Options{
		APIKey:      s.LLMAPIKey,
		BaseURL:     s.LLMBaseURL,
		Model:       s.LLMModel,
		Timeout:     s.LLMTimeout,
		Temperature: s.LLMTemperature,
		MaxTokens:   s.LLMMaxTokens,
		TopP:        s.LLMTopP,
	}
}

// Mistral talks to Mistral's OpenAI-compatible chat completions endpoint.
// Any other compatible provider works by pointing BaseURL at it.
type Mistral struct {
	client openai.Client
	opts   Options
}

func NewMistral(opts Options) (*Mistral, error) {
	if opts.APIKey == "" {
		return nil, &Error{Type: ErrorTypeConfig, Message: "API key is required"}
	}
	if opts.BaseURL == "" {
		return nil, &Error{Type: ErrorTypeConfig, Message: "base URL is required"}
	}
	if opts.Model == "" {
		return nil, &Error{Type: ErrorTypeConfig, Message: "model is required"}
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	client := openai.NewClient(
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(strings.TrimSuffix(opts.BaseURL, "/")+"/"),
		option.WithRequestTimeout(opts.Timeout),
		// Retries are decided by callers.
		option.WithMaxRetries(0),
	)

	return &Mistral{client: client, opts: opts}, nil
}

// Model returns the configured upstream model name.
func (m *Mistral) Model() string {
	return m.opts.Model
}

func (m *Mistral) Complete(ctx context.Context, req CompletionRequest) (*types.Completion, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(m.opts.Model),
		Messages:    toOpenAIMessages(req.Messages),
		Temperature: openai.Float(pick(req.Temperature, m.opts.Temperature)),
		MaxTokens:   openai.Int(int64(pickInt(req.MaxTokens, m.opts.MaxTokens))),
	}
	if topP := pick(req.TopP, m.opts.TopP); topP > 0 {
		params.TopP = openai.Float(topP)
	}

	start := time.Now()
	resp, err := m.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		return nil, classifyError(ctx, err, duration)
	}

	config.Logger.WithFields(logrus.Fields{
		"model":    resp.Model,
		"duration": duration.String(),
		"tokens":   resp.Usage.TotalTokens,
	}).Debug("Chat completion succeeded")

	if len(resp.Choices) == 0 {
		return nil, NewEmptyResponseError()
	}

	completion := &types.Completion{
		ID:      resp.ID,
		Object:  "chat.completion",
		Created: resp.Created,
		Model:   resp.Model,
		Usage: &types.CompletionUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		Source: types.SourceModel,
	}
	for _, choice := range resp.Choices {
		completion.Choices = append(completion.Choices, types.CompletionChoice{
			Index:        int(choice.Index),
			Message:      types.ChatMessage{Role: types.RoleAssistant, Content: choice.Message.Content},
			FinishReason: string(choice.FinishReason),
		})
	}
	if strings.TrimSpace(completion.Text()) == "" {
		return nil, NewEmptyResponseError()
	}
	return completion, nil
}

func classifyError(ctx context.Context, err error, duration time.Duration) *Error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		config.Logger.WithFields(logrus.Fields{
			"status":   apiErr.StatusCode,
			"duration": duration.String(),
		}).Error("Chat completions API returned an error")
		return NewAPIError(apiErr.StatusCode, upstreamBody(apiErr), err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NewTimeoutError(err)
	}
	config.Logger.WithFields(logrus.Fields{
		"duration": duration.String(),
	}).Error("Chat completions request failed: ", err)
	return NewNetworkError(err)
}

// upstreamBody returns the error payload as the API sent it. The SDK only
// keeps the "error" member raw, so top-level bodies like Mistral's are read
// back from the response.
func upstreamBody(apiErr *openai.Error) string {
	if raw := apiErr.RawJSON(); raw != "" {
		return raw
	}
	if apiErr.Response != nil && apiErr.Response.Body != nil {
		body, err := io.ReadAll(apiErr.Response.Body)
		if err == nil && len(body) > 0 {
			apiErr.Response.Body = io.NopCloser(bytes.NewReader(body))
			return strings.TrimSpace(string(body))
		}
	}
	return apiErr.Message
}

func toOpenAIMessages(messages []types.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case types.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case types.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

func pick(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

func pickInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
