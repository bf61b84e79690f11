package models

import "time"

// Status is the lifecycle stage of a presentation.
type Status string

const (
	StatusProcessing      Status = "processing"
	StatusOutlineCreated  Status = "outline_created"
	StatusSlidesSaved     Status = "slides_saved"
	StatusImagesGenerated Status = "images_generated"
	StatusCompleted       Status = "completed"
	StatusFailed          Status = "failed"
)

// Presentation is one transcript-to-deck request and its results.
type Presentation struct {
	ID                 string    `json:"id"`
	SystemPrompt       string    `json:"systemPrompt"`
	ContentOrientation string    `json:"contentOrientation"`
	VisualStyle        string    `json:"visualStyle"`
	Transcript         string    `json:"transcript"`
	Title              string    `json:"title"`
	Status             Status    `json:"status"`
	Outline            *Outline  `json:"outline,omitempty"`
	PDFURL             string    `json:"pdfUrl,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Slide is a single page of a presentation.
type Slide struct {
	ID             string    `json:"id"`
	PresentationID string    `json:"presentationId"`
	SlideNumber    int       `json:"slideNumber"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ImagePrompt    string    `json:"imagePrompt"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SystemPrompt is a saved system prompt.
type SystemPrompt struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Outline is the structured deck the LLM returns.
type Outline struct {
	Title  string         `json:"title"`
	Slides []OutlineSlide `json:"slides"`
}

type OutlineSlide struct {
	SlideNumber int    `json:"slideNumber"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImagePrompt string `json:"imagePrompt"`
}

// ToSlides converts the outline into slide rows for a presentation.
func (o *Outline) ToSlides(presentationID string) []Slide {
	if o == nil {
		return nil
	}
	slides := make([]Slide, 0, len(o.Slides))
	for _, s := range o.Slides {
		slides = append(slides, Slide{
			PresentationID: presentationID,
			SlideNumber:    s.SlideNumber,
			Title:          s.Title,
			Description:    s.Description,
			ImagePrompt:    s.ImagePrompt,
		})
	}
	return slides
}
