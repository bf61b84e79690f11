package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

func (p *implProcessor) CreatePresentation(ctx context.Context, req CreateRequest) (*models.Presentation, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, fmt.Errorf("transcript is required: %w", models.ErrInvalidInput)
	}

	pres := &models.Presentation{
		SystemPrompt:       req.SystemPrompt,
		ContentOrientation: req.ContentOrientation,
		VisualStyle:        req.VisualStyle,
		Transcript:         req.Transcript,
		Status:             models.StatusProcessing,
	}
	if err := p.store.CreatePresentation(ctx, pres); err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}

	p.logger.Info(ctx, "Created presentation %s", pres.ID)
	return pres, nil
}

func (p *implProcessor) GetPresentation(ctx context.Context, id string) (*models.Presentation, []models.Slide, error) {
	if id == "" {
		return nil, nil, fmt.Errorf("presentation id is required: %w", models.ErrInvalidInput)
	}

	pres, err := p.store.GetPresentation(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get presentation: %w", err)
	}
	slides, err := p.store.ListSlides(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list slides: %w", err)
	}
	return pres, slides, nil
}

func (p *implProcessor) ListPresentations(ctx context.Context) ([]*models.Presentation, error) {
	list, err := p.store.ListPresentations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}
	return list, nil
}

func (p *implProcessor) DeletePresentation(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("presentation id is required: %w", models.ErrInvalidInput)
	}
	if err := p.store.DeletePresentation(ctx, id); err != nil {
		return fmt.Errorf("delete presentation: %w", err)
	}
	if p.hub != nil {
		p.hub.Forget(id)
	}
	p.logger.Info(ctx, "Deleted presentation %s", id)
	return nil
}

// SaveSystemPrompt replaces the saved system prompt.
func (p *implProcessor) SaveSystemPrompt(ctx context.Context, prompt string) (*models.SystemPrompt, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt is required: %w", models.ErrInvalidInput)
	}
	saved, err := p.store.SaveSystemPrompt(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("save system prompt: %w", err)
	}
	return saved, nil
}

// LoadSystemPrompt returns the saved prompt, or the configured default with an empty ID.
func (p *implProcessor) LoadSystemPrompt(ctx context.Context) (*models.SystemPrompt, error) {
	saved, err := p.store.LatestSystemPrompt(ctx)
	if err == nil {
		return saved, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("load system prompt: %w", err)
	}
	return &models.SystemPrompt{Prompt: p.cfg.Defaults.SystemPrompt}, nil
}
