package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const providerOpenAI = "openai"

// OpenAIClient wraps one SDK client shared by all requests. Nothing is
// mutated after construction.
type OpenAIClient struct {
	client openai.Client
	model  string
	apiKey func() string
}

// NewOpenAIClient creates a client. apiKey is consulted on every call so the
// credential always reflects the current environment. The SDK's own retries
// are disabled.
func NewOpenAIClient(httpClient *http.Client, baseURL, model string, apiKey func() string) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(baseURL, "/") + "/"),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
		apiKey: apiKey,
	}
}

// Complete sends one system + user exchange and returns the first choice text.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	var reqOpts []option.RequestOption
	if c.apiKey != nil {
		if key := c.apiKey(); key != "" {
			reqOpts = append(reqOpts, option.WithAPIKey(key))
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}, reqOpts...)
	if err != nil {
		return "", translateOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: response contained no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// translateOpenAIError maps SDK errors onto APIError and ConnectionError.
func translateOpenAIError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		msg := apierr.Message
		if msg == "" {
			msg = http.StatusText(apierr.StatusCode)
		}
		return &APIError{
			Provider:   providerOpenAI,
			StatusCode: apierr.StatusCode,
			Code:       apierr.Code,
			Type:       apierr.Type,
			Message:    msg,
		}
	}

	if IsConnection(err) {
		return &ConnectionError{Provider: providerOpenAI, Cause: err}
	}
	return err
}
