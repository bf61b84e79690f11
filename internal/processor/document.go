package processor

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

// GeneratePDF assembles the deck, uploads it and marks the presentation completed.
func (p *implProcessor) GeneratePDF(ctx context.Context, presentationID string) (string, error) {
	if presentationID == "" {
		return "", fmt.Errorf("presentation id is required: %w", models.ErrInvalidInput)
	}

	slides, err := p.slidesFor(ctx, presentationID)
	if err != nil {
		return "", err
	}

	pdf, err := p.deck.PDF(ctx, slides)
	if err != nil {
		return "", fmt.Errorf("build pdf: %w", err)
	}

	objectPath := deckObjectPath(presentationID)
	if err := p.bucket.Upload(ctx, objectPath, pdf, "application/pdf", true); err != nil {
		return "", fmt.Errorf("upload pdf: %w", err)
	}

	pdfURL := p.bucket.PublicURL(objectPath)
	if err := p.store.SetPDFURL(ctx, presentationID, pdfURL, models.StatusCompleted); err != nil {
		return "", fmt.Errorf("save pdf url: %w", err)
	}

	p.logger.Info(ctx, "PDF for %s ready: %s (%d pages, %d bytes)", presentationID, pdfURL, len(slides), len(pdf))
	return pdfURL, nil
}

// GenerateHTML renders the printable HTML deck and marks the presentation completed.
func (p *implProcessor) GenerateHTML(ctx context.Context, presentationID string) (*HTMLResult, error) {
	if presentationID == "" {
		return nil, fmt.Errorf("presentation id is required: %w", models.ErrInvalidInput)
	}

	slides, err := p.slidesFor(ctx, presentationID)
	if err != nil {
		return nil, err
	}

	html, err := p.deck.HTML(slides)
	if err != nil {
		return nil, fmt.Errorf("build html: %w", err)
	}

	if err := p.store.UpdateStatus(ctx, presentationID, models.StatusCompleted); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	return &HTMLResult{HTML: html, SlideCount: len(slides)}, nil
}

// OutlineDocument exports the outline as a DOCX with one section per slide.
func (p *implProcessor) OutlineDocument(ctx context.Context, presentationID string) ([]byte, error) {
	pres, slides, err := p.GetPresentation(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	if len(slides) == 0 {
		return nil, models.ErrNoSlides
	}

	title := pres.Title
	if title == "" {
		title = "Presentation " + pres.ID
	}

	doc, err := p.deck.OutlineDocx(title, slides)
	if err != nil {
		return nil, fmt.Errorf("build outline document: %w", err)
	}
	return doc, nil
}

func (p *implProcessor) slidesFor(ctx context.Context, presentationID string) ([]models.Slide, error) {
	slides, err := p.store.ListSlides(ctx, presentationID)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	if len(slides) == 0 {
		return nil, models.ErrNoSlides
	}
	return slides, nil
}
