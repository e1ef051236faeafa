// Package embedding talks to the sentence-embedding inference service that
// serves the encoder the regression artifacts were fitted against.
package embedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/solacetech/solace-backend/internal/config"
	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/solacetech/solace-backend/internal/integration/common"
	pkghttp "github.com/solacetech/solace-backend/pkg/http"
)

type Connector struct {
	config    config.EmbeddingConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.EmbeddingConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Embed returns the sentence vector for a single text. The vector width must
// match the dimension the downstream regressors were fitted with.
func (c *Connector) Embed(ctx context.Context, text string) ([]float64, error) {
	ctxzap.Debug(ctx, "requesting embedding", zap.Int("text_length", len(text)))

	req := &entity.EmbedRequest{Texts: []string{text}}

	var resp entity.EmbedResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.EmbedEndpoint, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("embed request failed: %w", err)
	}

	if len(resp.Embeddings) != 1 {
		return nil, fmt.Errorf("invalid embed response: expected 1 vector, got %d", len(resp.Embeddings))
	}

	vector := resp.Embeddings[0]
	if c.config.Dimension > 0 && len(vector) != c.config.Dimension {
		return nil, fmt.Errorf("invalid embed response: expected dimension %d, got %d", c.config.Dimension, len(vector))
	}

	return vector, nil
}
