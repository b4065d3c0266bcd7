package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// openAIClient implements LLMClient against any OpenAI-compatible chat
// completion endpoint, including Gemini's compatibility layer.
type openAIClient struct {
	cfg      LLMConfig
	client   *openai.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient for an OpenAI-compatible endpoint.
// It fails if no API key is configured.
func NewOpenAIClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	if observer == nil {
		observer = NoopObserver{}
	}

	oaCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		oaCfg.BaseURL = cfg.Endpoint
	}
	oaCfg.HTTPClient = &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}

	return &openAIClient{
		cfg:      cfg,
		client:   openai.NewClientWithConfig(oaCfg),
		observer: observer,
	}, nil
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := taskParams(c.cfg, req)

	chatReq := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    openAIMessages(req),
		Temperature: float32(temp),
		MaxTokens:   maxTok,
	}

	return generateWithRetry(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (string, string, error) {
		resp, err := c.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			var apiErr *openai.APIError
			if errors.As(err, &apiErr) && (apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden) {
				return "", "", fmt.Errorf("%w: %v", ErrMissingCredential, err)
			}
			return "", "", err
		}
		if len(resp.Choices) == 0 {
			return "", resp.Model, nil
		}
		return resp.Choices[0].Message.Content, resp.Model, nil
	})
}

func openAIMessages(req GenerateRequest) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	if req.SystemPrompt != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	for _, m := range req.History {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt})
}

func (c *openAIClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := c.client.ListModels(ctx)
	return err == nil
}
