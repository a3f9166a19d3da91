package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/iksnae/webscraper-chat/internal/config"
	"google.golang.org/genai"
)

// GeminiResponder answers through the Gemini API
type GeminiResponder struct {
	client      *genai.Client
	model       string
	temperature float32
	maxOut      int
}

// NewGeminiResponder creates a Gemini client from cfg
func NewGeminiResponder(ctx context.Context, cfg config.AIConfig) (*GeminiResponder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w (set GEMINI_API_KEY)", ErrNoAPIKey)
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &GeminiResponder{
		client:      c,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxOut:      cfg.MaxOutputTokens,
	}, nil
}

// Name implements Responder
func (g *GeminiResponder) Name() string {
	return config.ProviderGemini
}

// Respond starts a fresh chat and sends the prompt
func (g *GeminiResponder) Respond(ctx context.Context, req Request) (string, error) {
	temperature := g.temperature
	chat, err := g.client.Chats.Create(ctx, g.model, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SystemPrompt}}},
		Temperature:       &temperature,
		MaxOutputTokens:   int32(g.maxOut),
	}, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	parts := []genai.Part{{Text: req.Prompt}}
	if req.Image != nil {
		parts = append(parts, genai.Part{InlineData: &genai.Blob{
			MIMEType: req.Image.MIMEType,
			Data:     req.Image.Data,
		}})
	}

	resp, err := chat.SendMessage(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}
	text := ""
	for _, p := range resp.Candidates[0].Content.Parts {
		text += p.Text
	}
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}
