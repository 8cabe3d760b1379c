// Package gemini implements the document analyzer and code generator on top
// of Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/zerosource"
	"google.golang.org/genai"
)

// DefaultModel is used when options do not name a model.
const DefaultModel = "gemini-2.5-flash"

// NewClient connects to the Gemini API with apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, zerosource.Errorf(zerosource.EUNAVAILABLE, "Gemini API key not set")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func modelOrDefault(model string) string {
	if model == "" {
		return DefaultModel
	}
	return model
}

// generate sends a single-turn prompt and returns the response text.
func generate(ctx context.Context, client *genai.Client, model, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if client == nil {
		return "", zerosource.Errorf(zerosource.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", zerosource.Errorf(zerosource.EINTERNAL, "gemini returned nil result")
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", zerosource.Errorf(zerosource.EINTERNAL, "gemini returned empty response")
	}
	return text, nil
}

// StripCodeFence removes a single fenced code block wrapping the whole
// text, if present. Text that is not fully fenced is returned trimmed.
func StripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") || len(trimmed) < 6 {
		return trimmed
	}

	inner := strings.TrimSuffix(trimmed, "```")
	// Drop the opening fence line, including any info string.
	nl := strings.IndexByte(inner, '\n')
	if nl < 0 {
		return trimmed
	}
	return strings.TrimSpace(inner[nl+1:])
}
