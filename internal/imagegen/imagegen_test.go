package imagegen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting2slides/internal/logger"
	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	slide := models.Slide{SlideNumber: 3, Title: "Roadmap", Description: "Q4 milestones", ImagePrompt: "timeline on a wall"}

	got := BuildPrompt(slide, "", "Default style")
	assert.True(t, strings.HasPrefix(got, "Create a professional presentation slide image.\n"))
	assert.Contains(t, got, "Style: Default style\n")
	assert.Contains(t, got, "Title: Roadmap\n")
	assert.Contains(t, got, "Content: Q4 milestones\n")
	assert.Contains(t, got, "Visual direction: timeline on a wall\n")
	assert.Contains(t, got, "Use lime green (#d2dd00) as accent color, black for text/elements, white for background areas.\n")
	assert.Contains(t, got, "Aspect ratio: 16:9")

	got = BuildPrompt(models.Slide{Title: "X"}, " Watercolor ", "Default style")
	assert.Contains(t, got, "Style: Watercolor\n")
	assert.NotContains(t, got, "Visual direction")
}

func TestGenerateFallsThroughKeys(t *testing.T) {
	var keys []string
	g := &implGenerator{
		apiKeys:      []string{"k1", "k2"},
		model:        "imagen",
		defaultStyle: "plain",
		logger:       logger.NewNop(),
		render: func(ctx context.Context, apiKey, model, prompt string) (*Image, error) {
			keys = append(keys, apiKey)
			if apiKey == "k1" {
				return nil, errors.New("429")
			}
			return &Image{Data: []byte("png"), MIMEType: "image/png"}, nil
		},
	}

	img, err := g.Generate(context.Background(), models.Slide{SlideNumber: 1}, "")
	require.NoError(t, err)
	assert.Equal(t, "png", string(img.Data))
	assert.Equal(t, []string{"k1", "k2"}, keys)
}

func TestGenerateStopsOnNonQuotaError(t *testing.T) {
	var calls int
	g := &implGenerator{
		apiKeys: []string{"k1", "k2", "k3"},
		logger:  logger.NewNop(),
		render: func(ctx context.Context, apiKey, model, prompt string) (*Image, error) {
			calls++
			return nil, errors.New("safety filter")
		},
	}

	_, err := g.Generate(context.Background(), models.Slide{SlideNumber: 7}, "")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "slide 7")
	assert.Contains(t, err.Error(), "safety filter")
}

func TestGenerateAllKeysRateLimited(t *testing.T) {
	var calls int
	g := &implGenerator{
		apiKeys: []string{"k1", "k2"},
		logger:  logger.NewNop(),
		render: func(ctx context.Context, apiKey, model, prompt string) (*Image, error) {
			calls++
			return nil, errors.New("Error 429, RESOURCE_EXHAUSTED")
		},
	}

	_, err := g.Generate(context.Background(), models.Slide{SlideNumber: 2}, "")
	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, err.Error(), "all API keys exhausted")
}

func TestGenerateWithoutKeys(t *testing.T) {
	g := &implGenerator{logger: logger.NewNop()}

	_, err := g.Generate(context.Background(), models.Slide{SlideNumber: 1}, "")
	assert.ErrorIs(t, err, models.ErrNoAPIKeys)
}
