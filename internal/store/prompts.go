package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

// SaveSystemPrompt keeps exactly one saved prompt: previous rows are removed.
func (s *implStore) SaveSystemPrompt(ctx context.Context, prompt string) (*models.SystemPrompt, error) {
	sp := &models.SystemPrompt{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin save prompt: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM system_prompts`); err != nil {
		return nil, fmt.Errorf("clear prompts: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO system_prompts (id, prompt, created_at) VALUES (?, ?, ?)`,
		sp.ID, sp.Prompt, formatTime(sp.CreatedAt),
	); err != nil {
		return nil, fmt.Errorf("insert prompt: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit prompt: %w", err)
	}
	return sp, nil
}

func (s *implStore) LatestSystemPrompt(ctx context.Context) (*models.SystemPrompt, error) {
	var (
		sp        models.SystemPrompt
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, prompt, created_at FROM system_prompts ORDER BY created_at DESC LIMIT 1`,
	).Scan(&sp.ID, &sp.Prompt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("system prompt: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("latest prompt: %w", err)
	}
	sp.CreatedAt = parseTime(createdAt)
	return &sp, nil
}
