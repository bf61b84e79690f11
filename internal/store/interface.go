package store

import (
	"context"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

// Store persists presentations, slides and saved system prompts.
type Store interface {
	CreatePresentation(ctx context.Context, p *models.Presentation) error
	GetPresentation(ctx context.Context, id string) (*models.Presentation, error)
	ListPresentations(ctx context.Context) ([]*models.Presentation, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) error
	SaveOutline(ctx context.Context, id string, outline *models.Outline, status models.Status) error
	SetPDFURL(ctx context.Context, id, url string, status models.Status) error
	DeletePresentation(ctx context.Context, id string) error

	ReplaceSlides(ctx context.Context, presentationID string, slides []models.Slide) error
	ListSlides(ctx context.Context, presentationID string) ([]models.Slide, error)
	SetSlideImage(ctx context.Context, slideID, url string) error

	SaveSystemPrompt(ctx context.Context, prompt string) (*models.SystemPrompt, error)
	LatestSystemPrompt(ctx context.Context) (*models.SystemPrompt, error)

	Close() error
}
