package imagegen

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

type renderFunc func(ctx context.Context, apiKey, model, prompt string) (*Image, error)

// Generate renders the slide's image. A rate-limited key hands over to the
// next one; any other failure is returned at once.
func (g *implGenerator) Generate(ctx context.Context, slide models.Slide, visualStyle string) (*Image, error) {
	if len(g.apiKeys) == 0 {
		return nil, models.ErrNoAPIKeys
	}

	prompt := BuildPrompt(slide, visualStyle, g.defaultStyle)

	var lastErr error
	for i, key := range g.apiKeys {
		img, err := g.render(ctx, key, g.model, prompt)
		if err == nil {
			return img, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !models.IsRateLimited(err) {
			return nil, fmt.Errorf("generate image for slide %d: %w", slide.SlideNumber, err)
		}
		g.logger.Warn(ctx, "Key %d rate limited for slide %d, trying next key", i+1, slide.SlideNumber)
		lastErr = err
	}
	return nil, fmt.Errorf("generate image for slide %d: all API keys exhausted: %w", slide.SlideNumber, lastErr)
}

func imagenRender(ctx context.Context, apiKey, model, prompt string) (*Image, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	resp, err := client.Models.GenerateImages(ctx, model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspectRatio,
		OutputMIMEType: "image/png",
	})
	if err != nil {
		return nil, fmt.Errorf("generate images: %w", err)
	}

	for _, gi := range resp.GeneratedImages {
		if gi == nil || gi.Image == nil || len(gi.Image.ImageBytes) == 0 {
			continue
		}
		mime := gi.Image.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return &Image{Data: gi.Image.ImageBytes, MIMEType: mime}, nil
	}
	return nil, fmt.Errorf("no image returned")
}
