package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/rawline/internal/cfg"
	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/jitter"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"google.golang.org/genai"
)

const (
	embedAttempts  = 3
	embedBaseDelay = 500 * time.Millisecond
	embedMaxDelay  = 5 * time.Second
)

// Embedder строит текстовые эмбеддинги товаров для поиска похожих.
type Embedder struct {
	models     models
	cfg        *cfg.GenAICfg
	dimensions int32
	logger     logger.Logger
	baseDelay  time.Duration
}

func NewEmbedder(m *genai.Models, cfg *cfg.GenAICfg, dimensions uint64, logger logger.Logger) *Embedder {
	emb := &Embedder{
		cfg:        cfg,
		dimensions: int32(dimensions),
		logger:     logger,
		baseDelay:  embedBaseDelay,
	}
	if m != nil {
		emb.models = m
	}
	return emb
}

// Embed выполняет запрос с повторами и экспоненциальной задержкой.
func (m *Embedder) Embed(ctx context.Context, text string) (*usecase.EmbedRes, error) {
	const op = "Embedder.Embed"

	if m.models == nil {
		return nil, e.Wrap(op, e.ErrEmbeddingsUnavailable)
	}

	var lastErr error
	for attempt := 0; attempt < embedAttempts; attempt++ {
		vector, err := m.embedOnce(ctx, text)
		if err == nil {
			return usecase.NewEmbedRes(vector, m.cfg.EmbeddingModel), nil
		}
		lastErr = err

		if attempt == embedAttempts-1 {
			break
		}

		sleepTime := jitter.ExponentialBackoff(m.baseDelay, embedMaxDelay, attempt, jitter.DefaultJitter)
		m.logger.Warnf("embedding failed, retrying in %v (attempt %d): %v", sleepTime, attempt+1, err)
		if err := jitter.Sleep(ctx, sleepTime); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	return nil, e.Wrap(op, fmt.Errorf("all %d attempts failed: %w", embedAttempts, lastErr))
}

func (m *Embedder) embedOnce(ctx context.Context, text string) ([]float32, error) {
	if m.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.Timeout)
		defer cancel()
	}

	config := &genai.EmbedContentConfig{TaskType: "SEMANTIC_SIMILARITY"}
	if m.dimensions > 0 {
		config.OutputDimensionality = genai.Ptr(m.dimensions)
	}

	resp, err := m.models.EmbedContent(ctx, m.cfg.EmbeddingModel, genai.Text(text), config)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, e.ErrVectorEmbeddingEmpty
	}

	return resp.Embeddings[0].Values, nil
}
