package provider

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/petasbytes/agente/internal/config"
	"github.com/petasbytes/agente/memory"
)

const DefaultOpenAIModel = openai.GPT4o

// OpenAI implements Client on the Chat Completions API. BaseURL lets it
// talk to any OpenAI-compatible gateway.
type OpenAI struct {
	client      *openai.Client
	apiKey      string
	model       string
	temperature *float64
	timeout     time.Duration
}

// NewOpenAI builds a client from cfg.
func NewOpenAI(cfg config.Config, hc *http.Client) *OpenAI {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if hc != nil {
		oc.HTTPClient = hc
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		client:      openai.NewClientWithConfig(oc),
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
}

// Complete sends msgs and returns the first choice's content, trimmed.
// A blank first choice is an EmptyResponse.
func (o *OpenAI) Complete(ctx context.Context, msgs []memory.Message) (string, error) {
	if err := checkRequest(o.apiKey, msgs); err != nil {
		return "", err
	}
	ctx, cancel := withDeadline(ctx, o.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(msgs)),
	}
	for _, m := range msgs {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	if o.temperature != nil {
		req.Temperature = float32(*o.temperature)
		// Temperature is omitempty on the wire; zero must still be sent.
		if req.Temperature == 0 {
			req.Temperature = math.SmallestNonzeroFloat32
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", Classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", Classify(ErrEmptyResponse)
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", Classify(ErrEmptyResponse)
	}
	return reply, nil
}
