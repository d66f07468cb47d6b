package gemini

import (
	"context"

	"github.com/DRSN-tech/rawline/internal/cfg"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/jimlawless/whereami"
	"google.golang.org/genai"
)

// models — подмножество genai.Models, которым пользуются советник и эмбеддер.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// NewModels создаёт клиент Gemini API. Пустой ключ даёт nil без ошибки: сервисы работают в режиме заглушки.
func NewModels(ctx context.Context, cfg *cfg.GenAICfg) (*genai.Models, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return client.Models, nil
}
