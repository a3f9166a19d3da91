package assistant

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/iksnae/webscraper-chat/internal/config"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIResponder answers through any OpenAI-compatible chat completions API
type OpenAIResponder struct {
	client      openai.Client
	model       string
	temperature float32
	maxOut      int
}

// NewOpenAIResponder creates an OpenAI client from cfg
func NewOpenAIResponder(cfg config.AIConfig) (*OpenAIResponder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w (set OPENAI_API_KEY)", ErrNoAPIKey)
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIResponder{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: cfg.Temperature,
		maxOut:      cfg.MaxOutputTokens,
	}, nil
}

// Name implements Responder
func (o *OpenAIResponder) Name() string {
	return config.ProviderOpenAI
}

// Respond sends the system prompt and the user prompt as one completion
func (o *OpenAIResponder) Respond(ctx context.Context, req Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			userMessage(req),
		},
		Temperature: openai.Float(float64(o.temperature)),
	}
	if o.maxOut > 0 {
		params.MaxTokens = openai.Int(int64(o.maxOut))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func userMessage(req Request) openai.ChatCompletionMessageParamUnion {
	if req.Image == nil {
		return openai.UserMessage(req.Prompt)
	}
	dataURI := fmt.Sprintf("data:%s;base64,%s", req.Image.MIMEType, base64.StdEncoding.EncodeToString(req.Image.Data))
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(req.Prompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: dataURI,
		}),
	}
	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: parts,
			},
		},
	}
}
