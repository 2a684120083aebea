// Package llm wraps the OpenAI-compatible completion endpoint behind the
// small surface the rest of the app needs: one streaming call and a
// connectivity probe.
package llm

import (
	"context"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"chatapp/internal/models"
)

// PingTimeout bounds the connectivity probe so a dead endpoint cannot stall
// the periodic check.
const PingTimeout = 5 * time.Second

// Client talks to one OpenAI-compatible endpoint with one configured model.
type Client struct {
	client openai.Client
	model  string
}

func New(baseURL, apiKey, model string) *Client {
	return &Client{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model: model,
	}
}

// Stream opens a streaming completion for the given conversation and invokes
// onDelta for every text fragment in arrival order. It returns when the
// stream finishes, the context is cancelled, or transport fails; a
// cancellation surfaces as the context's error.
func (c *Client) Stream(ctx context.Context, msgs []models.Message, maxOutputTokens int64, onDelta func(string)) error {
	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: toParams(msgs),
	}
	if maxOutputTokens > 0 {
		params.MaxCompletionTokens = openai.Int(maxOutputTokens)
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			onDelta(delta)
		}
	}
	if err := stream.Err(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

// Ping checks endpoint reachability with a lightweight model-list request.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	_, err := c.client.Models.List(ctx)
	return err
}

// toParams converts conversation messages to endpoint form, excluding any
// in-flight placeholder.
func toParams(msgs []models.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		if m.IsStreaming {
			continue
		}
		switch m.Role {
		case models.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case models.RoleUser:
			out = append(out, openai.UserMessage(m.Content))
		case models.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		}
	}
	return out
}
