package llm

import (
	"context"
	"time"

	"emperror.dev/errors"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// All fields are drafted with the same sampling temperature; only the prompt
// and token budget vary per field.
const temperature = 0.7

// Client wraps the OpenAI chat-completion API with the single call shape the
// field generators need.
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(apiKey string, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.Errorf("no OpenAI API key provided (do you need to configure one?)")
	}
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Complete sends a single user-role message and returns the first
// completion's text. Any service error propagates to the caller; the run is
// aborted rather than retried.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	log := logrus.WithFields(logrus.Fields{
		"model":      c.model,
		"max_tokens": maxTokens,
	})
	log.Debug("executing chat completion...")
	startTime := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		log.WithError(err).Debug("chat completion failed")
		return "", errors.Wrap(err, "chat completion request failed")
	}
	log.WithField("elapsed", time.Since(startTime)).Debug("chat completion succeeded")

	if len(resp.Choices) == 0 {
		return "", errors.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
