package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector produces deterministic pseudo-embeddings for local
// development. The same text always maps to the same vector, so mock
// predictions are stable across runs.
type MockConnector struct {
	dimension int
	logger    *zap.Logger
}

func NewMockConnector(dimension int, logger *zap.Logger) *MockConnector {
	return &MockConnector{
		dimension: dimension,
		logger:    logger,
	}
}

func (m *MockConnector) Embed(ctx context.Context, text string) ([]float64, error) {
	ctxzap.Debug(ctx, "[MOCK] embedding text", zap.Int("text_length", len(text)))

	vector := make([]float64, m.dimension)
	seed := sha256.Sum256([]byte(text))
	for i := range vector {
		// Expand the digest into the full width by re-hashing with the index.
		var buf [40]byte
		copy(buf[:32], seed[:])
		binary.LittleEndian.PutUint64(buf[32:], uint64(i))
		h := sha256.Sum256(buf[:])
		raw := binary.LittleEndian.Uint64(h[:8])
		// Map to [-1, 1).
		vector[i] = float64(int64(raw))/float64(1<<63)
	}

	return vector, nil
}
