package provider

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/petasbytes/agente/internal/config"
	"github.com/petasbytes/agente/memory"
)

const DefaultAnthropicModel = anthropic.ModelClaude3_7SonnetLatest

// Anthropic implements Client on the Messages API.
type Anthropic struct {
	client      anthropic.Client
	apiKey      string
	model       anthropic.Model
	maxTokens   int64
	temperature *float64
	timeout     time.Duration
}

// NewAnthropic builds a client from cfg. The SDK's own env lookup is
// overridden by the explicit key so configuration stays in one place.
func NewAnthropic(cfg config.Config, hc *http.Client) *Anthropic {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if hc != nil {
		opts = append(opts, option.WithHTTPClient(hc))
	}
	model := anthropic.Model(cfg.Model)
	if model == "" {
		model = DefaultAnthropicModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = config.DefaultMaxTokens
	}
	return &Anthropic{
		client:      anthropic.NewClient(opts...),
		apiKey:      cfg.APIKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
}

// Complete sends msgs and returns the first text block of the reply.
// System-role messages are lifted into the system parameter.
func (a *Anthropic) Complete(ctx context.Context, msgs []memory.Message) (string, error) {
	if err := checkRequest(a.apiKey, msgs); err != nil {
		return "", err
	}
	ctx, cancel := withDeadline(ctx, a.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages:  make([]anthropic.MessageParam, 0, len(msgs)),
	}
	for _, m := range msgs {
		switch m.Role {
		case memory.RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		case memory.RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	if a.temperature != nil {
		params.Temperature = anthropic.Float(*a.temperature)
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", Classify(err)
	}
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok && strings.TrimSpace(tb.Text) != "" {
			return strings.TrimSpace(tb.Text), nil
		}
	}
	return "", Classify(ErrEmptyResponse)
}
