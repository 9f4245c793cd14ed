package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultChatModel is the model used to write answers.
const DefaultChatModel = "llama3.2"

type ChatConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ChatClient streams completions from an OpenAI-compatible chat endpoint.
type ChatClient struct {
	client *openai.Client
	model  string
}

func NewChatClient(cfg ChatConfig) *ChatClient {
	model := cfg.Model
	if model == "" {
		model = DefaultChatModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ChatClient{
		client: newAPIClient(cfg.APIKey, baseURL),
		model:  model,
	}
}

// Stream sends prompt as a single user message and yields the response text
// fragment by fragment as the server produces it. The request is only sent
// once the sequence is ranged over; stopping early closes the stream.
func (c *ChatClient) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Stream: true,
		})
		if err != nil {
			yield("", fmt.Errorf("failed to start chat stream: %w", err))
			return
		}
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", fmt.Errorf("chat stream failed: %w", err))
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			fragment := resp.Choices[0].Delta.Content
			if fragment == "" {
				continue
			}
			if !yield(fragment, nil) {
				return
			}
		}
	}
}
