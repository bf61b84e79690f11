package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// writeOutput copies the uploaded deck into the output folder as <transcript name>.pdf
func (p *implProcessor) writeOutput(ctx context.Context, presentationID, sourcePath string) (string, error) {
	data, err := p.bucket.Download(ctx, deckObjectPath(presentationID))
	if err != nil {
		return "", fmt.Errorf("download deck: %w", err)
	}

	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := filepath.Base(sourcePath)
	destPath := filepath.Join(p.cfg.Paths.Output, strings.TrimSuffix(name, filepath.Ext(name))+".pdf")

	p.logger.Info(ctx, "Writing deck to output: %s", destPath)

	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return "", fmt.Errorf("write deck: %w", err)
	}

	return destPath, nil
}

// moveToArchived moves a processed transcript out of the inbox
func (p *implProcessor) moveToArchived(ctx context.Context, sourcePath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(sourcePath))

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", sourcePath, destPath)

	if err := os.Rename(sourcePath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}

	return nil
}
