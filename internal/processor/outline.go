package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
	"github.com/nguyentantai21042004/meeting2slides/internal/outliner"
)

// ProcessTranscript asks the model for an outline and stores it as the presentation's slides.
func (p *implProcessor) ProcessTranscript(ctx context.Context, req TranscriptRequest) (*TranscriptResult, error) {
	if req.PresentationID == "" {
		return nil, fmt.Errorf("presentation id is required: %w", models.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, fmt.Errorf("transcript is required: %w", models.ErrInvalidInput)
	}

	outline, err := p.outline(ctx, req)
	if err != nil {
		return nil, err
	}

	count, err := p.saveOutline(ctx, req.PresentationID, outline)
	if err != nil {
		return nil, err
	}

	return &TranscriptResult{Outline: outline, SlideCount: count}, nil
}

func (p *implProcessor) outline(ctx context.Context, req TranscriptRequest) (*models.Outline, error) {
	if _, err := p.store.GetPresentation(ctx, req.PresentationID); err != nil {
		return nil, fmt.Errorf("get presentation: %w", err)
	}

	p.logger.Info(ctx, "Generating outline for %s (%d chars of transcript)", req.PresentationID, len(req.Transcript))
	outline, err := p.outliner.Outline(ctx, outliner.Request{
		Transcript:         req.Transcript,
		SystemPrompt:       req.SystemPrompt,
		ContentOrientation: req.ContentOrientation,
		VisualStyle:        req.VisualStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("generate outline: %w", err)
	}
	return outline, nil
}

// saveOutline stores the outline, then swaps the slide rows.
// Existing slides are left untouched when the outline is empty.
func (p *implProcessor) saveOutline(ctx context.Context, id string, outline *models.Outline) (int, error) {
	if err := p.store.SaveOutline(ctx, id, outline, models.StatusOutlineCreated); err != nil {
		return 0, fmt.Errorf("save outline: %w", err)
	}

	if len(outline.Slides) == 0 {
		return 0, fmt.Errorf("outline has no slides")
	}

	if err := p.store.ReplaceSlides(ctx, id, outline.ToSlides(id)); err != nil {
		return 0, fmt.Errorf("save slides: %w", err)
	}
	if err := p.store.UpdateStatus(ctx, id, models.StatusSlidesSaved); err != nil {
		return 0, fmt.Errorf("update status: %w", err)
	}

	p.logger.Info(ctx, "Saved %d slides for %s: %q", len(outline.Slides), id, outline.Title)
	return len(outline.Slides), nil
}
