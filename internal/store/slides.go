package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

// ReplaceSlides swaps the slide set of a presentation in one transaction.
func (s *implStore) ReplaceSlides(ctx context.Context, presentationID string, slides []models.Slide) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace slides: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM presentations WHERE id = ?`, presentationID).Scan(&exists); err != nil {
		return fmt.Errorf("check presentation: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("presentation %s: %w", presentationID, models.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM slides WHERE presentation_id = ?`, presentationID); err != nil {
		return fmt.Errorf("delete slides: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO slides (id, presentation_id, slide_number, title, description, image_prompt, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert slide: %w", err)
	}
	defer stmt.Close()

	now := formatTime(time.Now().UTC())
	for i := range slides {
		sl := &slides[i]
		if sl.ID == "" {
			sl.ID = uuid.NewString()
		}
		sl.PresentationID = presentationID
		if _, err := stmt.ExecContext(ctx,
			sl.ID,
			presentationID,
			sl.SlideNumber,
			sl.Title,
			sl.Description,
			sl.ImagePrompt,
			nullableString(sl.ImageURL),
			now,
		); err != nil {
			return fmt.Errorf("insert slide %d: %w", sl.SlideNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit slides: %w", err)
	}
	return nil
}

func (s *implStore) ListSlides(ctx context.Context, presentationID string) ([]models.Slide, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, presentation_id, slide_number, title, description, image_prompt, image_url, created_at
		FROM slides WHERE presentation_id = ? ORDER BY slide_number ASC`, presentationID)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	defer rows.Close()

	var out []models.Slide
	for rows.Next() {
		var (
			sl        models.Slide
			imageURL  sql.NullString
			createdAt string
		)
		if err := rows.Scan(
			&sl.ID,
			&sl.PresentationID,
			&sl.SlideNumber,
			&sl.Title,
			&sl.Description,
			&sl.ImagePrompt,
			&imageURL,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		sl.ImageURL = imageURL.String
		sl.CreatedAt = parseTime(createdAt)
		out = append(out, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slides: %w", err)
	}
	return out, nil
}

func (s *implStore) SetSlideImage(ctx context.Context, slideID, url string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE slides SET image_url = ? WHERE id = ?`, nullableString(url), slideID)
	if err != nil {
		return fmt.Errorf("set slide image: %w", err)
	}
	return expectAffected(res, "slide", slideID)
}
