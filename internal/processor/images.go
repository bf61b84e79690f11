package processor

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/meeting2slides/internal/deck"
	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

func slideObjectPath(presentationID string, slideNumber int) string {
	return fmt.Sprintf("presentation_%s/slide_%d.png", presentationID, slideNumber)
}

func deckObjectPath(presentationID string) string {
	return fmt.Sprintf("presentation_%s/deck.pdf", presentationID)
}

func (p *implProcessor) GenerateImages(ctx context.Context, req ImagesRequest) ([]SlideImage, error) {
	if req.PresentationID == "" {
		return nil, fmt.Errorf("presentation id is required: %w", models.ErrInvalidInput)
	}
	return p.generateImages(ctx, req, nil)
}

// generateImages renders slides one after another. A slide whose image cannot be
// generated gets a placeholder URL; one whose upload fails keeps the image inline.
func (p *implProcessor) generateImages(ctx context.Context, req ImagesRequest, onSlide func(done, total int)) ([]SlideImage, error) {
	slides, err := p.store.ListSlides(ctx, req.PresentationID)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	if len(slides) == 0 {
		return nil, models.ErrNoSlides
	}

	p.logger.Info(ctx, "Generating %d images for %s", len(slides), req.PresentationID)

	results := make([]SlideImage, 0, len(slides))
	for i, slide := range slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		imageURL := p.renderSlide(ctx, req, slide)
		if err := p.store.SetSlideImage(ctx, slide.ID, imageURL); err != nil {
			return nil, fmt.Errorf("save image for slide %d: %w", slide.SlideNumber, err)
		}

		results = append(results, SlideImage{
			SlideID:     slide.ID,
			ImageURL:    imageURL,
			SlideNumber: slide.SlideNumber,
		})
		if onSlide != nil {
			onSlide(i+1, len(slides))
		}
	}

	if err := p.store.UpdateStatus(ctx, req.PresentationID, models.StatusImagesGenerated); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	return results, nil
}

func (p *implProcessor) renderSlide(ctx context.Context, req ImagesRequest, slide models.Slide) string {
	img, err := p.images.Generate(ctx, slide, req.VisualStyle)
	if err != nil {
		p.logger.Warn(ctx, "Image for slide %d of %s failed, using placeholder: %v", slide.SlideNumber, req.PresentationID, err)
		return deck.PlaceholderURL(slide.Title)
	}

	objectPath := slideObjectPath(req.PresentationID, slide.SlideNumber)
	if err := p.bucket.Upload(ctx, objectPath, img.Data, img.MIMEType, true); err != nil {
		p.logger.Warn(ctx, "Upload of %s failed, storing image inline: %v", objectPath, err)
		return deck.DataURL(img.MIMEType, img.Data)
	}

	p.logger.Debug(ctx, "Stored slide %d image at %s", slide.SlideNumber, objectPath)
	return p.bucket.PublicURL(objectPath)
}
