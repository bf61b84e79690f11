package deck

import (
	"context"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

// Builder renders a presentation's slides into deliverable documents.
type Builder interface {
	// PDF renders one page per slide, in the order given.
	PDF(ctx context.Context, slides []models.Slide) ([]byte, error)
	// HTML renders a printable HTML deck.
	HTML(slides []models.Slide) (string, error)
	// OutlineDocx renders the outline as a speaker-notes document.
	OutlineDocx(title string, slides []models.Slide) ([]byte, error)
}

// Fetcher loads image bytes referenced by a slide's image URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}
