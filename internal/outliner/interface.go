package outliner

import (
	"context"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

// Request carries the transcript and the free-form steering strings.
// Blank fields fall back to the configured defaults.
type Request struct {
	Transcript         string
	SystemPrompt       string
	ContentOrientation string
	VisualStyle        string
}

// Outliner turns a meeting transcript into a slide outline.
type Outliner interface {
	Outline(ctx context.Context, req Request) (*models.Outline, error)
}
