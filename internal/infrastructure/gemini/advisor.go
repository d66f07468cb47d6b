package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/DRSN-tech/rawline/internal/cfg"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"google.golang.org/genai"
)

const (
	AdviceUnavailable = "AI Assistant unavailable. Please refer to our size guide."
	AdviceFailed      = "Error connecting to the Fit Assistant. Please try again."
	AdviceEmpty       = "Selection based on your preference is recommended."

	adviceTemperature = 0.7
	adviceTopP        = 0.95
)

// Advisor генерирует короткий совет по размеру и посадке.
type Advisor struct {
	models models
	cfg    *cfg.GenAICfg
	logger logger.Logger
}

// NewAdvisor принимает nil вместо models, если ключ API не задан.
func NewAdvisor(m *genai.Models, cfg *cfg.GenAICfg, logger logger.Logger) *Advisor {
	a := &Advisor{cfg: cfg, logger: logger}
	if m != nil {
		a.models = m
	}
	return a
}

// GetAdvice никогда не возвращает ошибку: сбои заменяются фиксированными текстами.
func (a *Advisor) GetAdvice(ctx context.Context, productTitle string, details string) string {
	if a.models == nil {
		return AdviceUnavailable
	}

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	resp, err := a.models.GenerateContent(ctx, a.cfg.Model, genai.Text(advicePrompt(productTitle, details)), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](adviceTemperature),
		TopP:        genai.Ptr[float32](adviceTopP),
	})
	if err != nil {
		a.logger.Errorf(err, "Gemini fit advice request failed")
		return AdviceFailed
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return AdviceEmpty
	}
	return text
}

func advicePrompt(productTitle, details string) string {
	return fmt.Sprintf("User is looking at the %s. Their details: %s.\n"+
		"Give a concise, editorial-style advice (max 2 sentences) on which size they should pick or how the garment will feel on them.\n"+
		"Keep the tone calm, professional, and minimal. Do not use exclamation marks.",
		productTitle, details)
}
