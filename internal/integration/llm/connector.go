// Package llm talks to an OpenAI-compatible chat-completions API (Mistral in
// production). Responses come back as raw text; callers are responsible for
// any JSON extraction.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/solacetech/solace-backend/internal/config"
	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/solacetech/solace-backend/internal/integration/common"
	pkghttp "github.com/solacetech/solace-backend/pkg/http"
)

type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Complete sends the message list to the chat-completions endpoint and
// returns the assistant text of the first choice.
func (c *Connector) Complete(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	ctxzap.Info(ctx, "requesting chat completion",
		zap.String("model", c.config.Model),
		zap.Int("message_count", len(messages)),
	)

	temperature := c.config.Temperature
	req := &entity.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   c.config.MaxTokens,
	}

	var resp entity.ChatCompletionResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatCompletionsEndpoint, req, &resp)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("invalid completion response: no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("invalid completion response: empty message content")
	}

	ctxzap.Info(ctx, "chat completion received",
		zap.Int("result_length", len(content)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return content, nil
}
