// Package assistant produces assistant replies for chat prompts and drives
// the simulated scrape progress shown alongside them.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/iksnae/webscraper-chat/internal"
	"github.com/iksnae/webscraper-chat/internal/config"
)

// SystemPrompt is sent with every request
const SystemPrompt = "You are WebScraper AI, an intelligent assistant specialized in web scraping and data extraction. " +
	"Your role is to help users extract, analyze, and understand data from websites efficiently. " +
	"Key Guidelines: Keep responses SHORT and CONCISE - aim for brevity while maintaining usefulness. " +
	"Be direct and action-oriented - deliver results or answers with minimal text. " +
	"Respond in words only (plain language). Do NOT output JSON, XML, YAML, HTML, or code blocks unless explicitly requested. " +
	"Do not use backticks or fenced code by default. " +
	"Avoid heavy formatting. Do not use tables or Markdown headings unless the user asks for them. " +
	"Bullet points are okay when they improve clarity. " +
	"Avoid verbose explanations - get straight to the point. " +
	"Provide actionable insights and ready-to-use guidance in the most compact form possible."

// FallbackText replaces the reply when the model cannot be reached
const FallbackText = "I apologize, but I'm having trouble connecting to my AI service right now. " +
	"Please check your API configuration and try again."

// ErrNoAPIKey is returned when a provider is selected without a key
var ErrNoAPIKey = errors.New("no API key configured")

// ErrOffline is returned by the responder used when ai.provider is "none"
var ErrOffline = errors.New("AI provider disabled")

// Request is one prompt, optionally with an image
type Request struct {
	Prompt string
	Image  *internal.Attachment
}

// Responder answers a single prompt. Each call is an independent exchange.
type Responder interface {
	Respond(ctx context.Context, req Request) (string, error)
	Name() string
}

// FallbackResponder never fails: errors from the wrapped responder are
// logged and replaced with FallbackText
type FallbackResponder struct {
	next Responder
}

// NewFallbackResponder wraps next
func NewFallbackResponder(next Responder) *FallbackResponder {
	return &FallbackResponder{next: next}
}

// Answer returns the reply and whether it came from the model
func (f *FallbackResponder) Answer(ctx context.Context, req Request) (string, bool) {
	if f.next == nil {
		return FallbackText, false
	}
	text, err := f.next.Respond(ctx, req)
	if err != nil {
		internal.LogError("%s request failed: %v", f.next.Name(), err)
		return FallbackText, false
	}
	return text, true
}

// Respond implements Responder
func (f *FallbackResponder) Respond(ctx context.Context, req Request) (string, error) {
	text, _ := f.Answer(ctx, req)
	return text, nil
}

// Name implements Responder
func (f *FallbackResponder) Name() string {
	if f.next == nil {
		return "fallback"
	}
	return f.next.Name()
}

type offlineResponder struct{}

func (offlineResponder) Respond(context.Context, Request) (string, error) { return "", ErrOffline }
func (offlineResponder) Name() string                                     { return config.ProviderNone }

// NewResponder builds the responder selected by cfg.Provider
func NewResponder(ctx context.Context, cfg config.AIConfig) (Responder, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		r, err := NewGeminiResponder(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	case config.ProviderOpenAI:
		r, err := NewOpenAIResponder(cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	case config.ProviderNone:
		return offlineResponder{}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.Provider)
	}
}
