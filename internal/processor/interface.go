package processor

import (
	"context"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

// Processor runs the transcript-to-deck pipeline, one stage at a time or end to end.
type Processor interface {
	CreatePresentation(ctx context.Context, req CreateRequest) (*models.Presentation, error)
	GetPresentation(ctx context.Context, id string) (*models.Presentation, []models.Slide, error)
	ListPresentations(ctx context.Context) ([]*models.Presentation, error)
	DeletePresentation(ctx context.Context, id string) error

	ProcessTranscript(ctx context.Context, req TranscriptRequest) (*TranscriptResult, error)
	GenerateImages(ctx context.Context, req ImagesRequest) ([]SlideImage, error)
	GeneratePDF(ctx context.Context, presentationID string) (string, error)
	GenerateHTML(ctx context.Context, presentationID string) (*HTMLResult, error)
	OutlineDocument(ctx context.Context, presentationID string) ([]byte, error)

	// Run executes every stage for one transcript, publishing checklist progress.
	Run(ctx context.Context, req RunRequest) (*RunResult, error)
	// ProcessFile runs a transcript file from the inbox and writes the deck to the output folder.
	ProcessFile(ctx context.Context, path string) error

	SaveSystemPrompt(ctx context.Context, prompt string) (*models.SystemPrompt, error)
	LoadSystemPrompt(ctx context.Context) (*models.SystemPrompt, error)
}

type CreateRequest struct {
	SystemPrompt       string `json:"systemPrompt"`
	ContentOrientation string `json:"contentOrientation"`
	VisualStyle        string `json:"visualStyle"`
	Transcript         string `json:"transcript"`
}

type TranscriptRequest struct {
	PresentationID     string `json:"presentationId"`
	SystemPrompt       string `json:"systemPrompt"`
	ContentOrientation string `json:"contentOrientation"`
	VisualStyle        string `json:"visualStyle"`
	Transcript         string `json:"transcript"`
}

type TranscriptResult struct {
	Outline    *models.Outline `json:"outline"`
	SlideCount int             `json:"slideCount"`
}

type ImagesRequest struct {
	PresentationID string `json:"presentationId"`
	VisualStyle    string `json:"visualStyle"`
}

// SlideImage reports where one slide's image ended up.
type SlideImage struct {
	SlideID     string `json:"slideId"`
	ImageURL    string `json:"imageUrl"`
	SlideNumber int    `json:"slideNumber"`
}

type HTMLResult struct {
	HTML       string `json:"html"`
	SlideCount int    `json:"slideCount"`
}

// RunRequest starts a full run. When PresentationID is set the existing
// record is reused instead of creating a new one.
type RunRequest struct {
	CreateRequest
	PresentationID string `json:"presentationId,omitempty"`
}

type RunResult struct {
	Presentation *models.Presentation
	SlideCount   int
	PDFURL       string
}
