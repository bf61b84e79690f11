package outliner

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

// generateFunc sends a prompt to the model with one API key and returns the text reply.
type generateFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

// Outline builds the prompt, calls Gemini and parses the JSON outline it returns.
func (o *implOutliner) Outline(ctx context.Context, req Request) (*models.Outline, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, fmt.Errorf("transcript is required: %w", models.ErrInvalidInput)
	}

	prompt := o.buildPrompt(req)
	o.logger.Debug(ctx, "Outline prompt: %d chars, model %s", len(prompt), o.model)

	text, err := o.callGemini(ctx, prompt)
	if err != nil {
		return nil, err
	}

	outline, err := parseOutline(text)
	if err != nil {
		return nil, err
	}

	o.logger.Info(ctx, "Outline generated: %q with %d slides", outline.Title, len(outline.Slides))
	return outline, nil
}

// callGemini sends the prompt and returns the reply text.
// Rotates API keys on 429 / quota errors.
func (o *implOutliner) callGemini(ctx context.Context, prompt string) (string, error) {
	attempts := len(o.apiKeys)
	if attempts == 0 {
		return "", models.ErrNoAPIKeys
	}

	var lastErr error
	for range attempts {
		idx, key := o.key()

		text, err := o.gen(ctx, key, o.model, prompt)
		if err != nil {
			if models.IsRateLimited(err) {
				o.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				o.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("empty response from Gemini")
		}
		return text, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (o *implOutliner) key() (int, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.currentKey, o.apiKeys[o.currentKey]
}

// rotateKey advances past the key at idx unless another caller already did.
func (o *implOutliner) rotateKey(idx int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.currentKey == idx {
		o.currentKey = (o.currentKey + 1) % len(o.apiKeys)
	}
}

func geminiGenerator(temperature float32, maxOutputTokens int32) generateFunc {
	return func(ctx context.Context, apiKey, model, prompt string) (string, error) {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return "", fmt.Errorf("create client: %w", err)
		}

		result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
			Temperature:      genai.Ptr(temperature),
			MaxOutputTokens:  maxOutputTokens,
			ResponseMIMEType: "application/json",
		})
		if err != nil {
			return "", err
		}

		if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			return "", nil
		}

		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		return text.String(), nil
	}
}
