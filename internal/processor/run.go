package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
	"github.com/nguyentantai21042004/meeting2slides/internal/progress"
)

// Run drives one transcript through outline, images and PDF.
// Any stage failure marks the presentation failed.
func (p *implProcessor) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	startTime := time.Now()

	pres, err := p.runPresentation(ctx, req)
	if err != nil {
		return nil, err
	}

	tracker := progress.NewTracker(p.hub)
	tracker.Bind(pres.ID)

	release, err := p.semaphore.acquire(ctx)
	if err != nil {
		tracker.Fail(err)
		p.markFailed(ctx, pres.ID)
		return nil, fmt.Errorf("wait for run slot: %w", err)
	}
	defer release()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting run for presentation %s (%d active)", pres.ID, p.semaphore.inUse())
	p.logger.Info(ctx, "========================================")

	result, err := p.runStages(ctx, pres, tracker)
	if err != nil {
		p.logger.Error(ctx, "Run for %s failed: %v", pres.ID, err)
		tracker.Fail(err)
		p.markFailed(ctx, pres.ID)
		return nil, err
	}
	tracker.Complete(result.PDFURL)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Run completed: %q", result.Presentation.Title)
	p.logger.Info(ctx, "Slides: %d", result.SlideCount)
	p.logger.Info(ctx, "PDF: %s", result.PDFURL)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return result, nil
}

// runPresentation loads the record named by req or creates a new one.
func (p *implProcessor) runPresentation(ctx context.Context, req RunRequest) (*models.Presentation, error) {
	if req.PresentationID == "" {
		return p.CreatePresentation(ctx, req.CreateRequest)
	}

	pres, err := p.store.GetPresentation(ctx, req.PresentationID)
	if err != nil {
		return nil, fmt.Errorf("get presentation: %w", err)
	}
	return pres, nil
}

func (p *implProcessor) runStages(ctx context.Context, pres *models.Presentation, tracker *progress.Tracker) (*RunResult, error) {
	tracker.Set(progress.TaskAnalyze, progress.TaskInProgress)
	outline, err := p.outline(ctx, TranscriptRequest{
		PresentationID:     pres.ID,
		SystemPrompt:       pres.SystemPrompt,
		ContentOrientation: pres.ContentOrientation,
		VisualStyle:        pres.VisualStyle,
		Transcript:         pres.Transcript,
	})
	if err != nil {
		return nil, err
	}
	tracker.Set(progress.TaskAnalyze, progress.TaskCompleted)

	tracker.Set(progress.TaskOutline, progress.TaskInProgress)
	count, err := p.saveOutline(ctx, pres.ID, outline)
	if err != nil {
		return nil, err
	}
	tracker.Set(progress.TaskOutline, progress.TaskCompleted)

	tracker.Set(progress.TaskImages, progress.TaskInProgress)
	_, err = p.generateImages(ctx, ImagesRequest{PresentationID: pres.ID, VisualStyle: pres.VisualStyle}, func(done, total int) {
		tracker.Detail(fmt.Sprintf("slide %d/%d", done, total))
	})
	if err != nil {
		return nil, fmt.Errorf("generate images: %w", err)
	}
	tracker.Set(progress.TaskImages, progress.TaskCompleted)

	tracker.Set(progress.TaskPDF, progress.TaskInProgress)
	pdfURL, err := p.GeneratePDF(ctx, pres.ID)
	if err != nil {
		return nil, err
	}
	tracker.Set(progress.TaskPDF, progress.TaskCompleted)

	final, err := p.store.GetPresentation(ctx, pres.ID)
	if err != nil {
		return nil, fmt.Errorf("get presentation: %w", err)
	}

	return &RunResult{Presentation: final, SlideCount: count, PDFURL: pdfURL}, nil
}

func (p *implProcessor) markFailed(ctx context.Context, id string) {
	if err := p.store.UpdateStatus(context.WithoutCancel(ctx), id, models.StatusFailed); err != nil {
		p.logger.Warn(ctx, "Failed to mark %s as failed: %v", id, err)
	}
}

// ProcessFile handles one transcript dropped into the inbox.
func (p *implProcessor) ProcessFile(ctx context.Context, path string) error {
	if p.reader == nil {
		return fmt.Errorf("no transcript reader configured")
	}

	p.logger.Info(ctx, "Processing transcript file: %s", path)

	text, err := p.reader.Read(ctx, path)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	prompt, err := p.LoadSystemPrompt(ctx)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx, RunRequest{CreateRequest: CreateRequest{
		SystemPrompt:       prompt.Prompt,
		ContentOrientation: p.cfg.Defaults.ContentOrientation,
		VisualStyle:        p.cfg.Defaults.VisualStyle,
		Transcript:         text,
	}})
	if err != nil {
		return fmt.Errorf("run %s: %w", filepath.Base(path), err)
	}

	outputPath, err := p.writeOutput(ctx, result.Presentation.ID, path)
	if err != nil {
		return err
	}

	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move transcript to archived folder: %v", err)
	}

	p.logger.Info(ctx, "Output deck: %s", outputPath)
	return nil
}
