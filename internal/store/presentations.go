package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

const presentationColumns = `id, system_prompt, content_orientation, visual_style, transcript,
	title, status, outline_json, pdf_url, created_at, updated_at`

func (s *implStore) CreatePresentation(ctx context.Context, p *models.Presentation) error {
	if p == nil {
		return fmt.Errorf("create presentation: %w", models.ErrInvalidInput)
	}

	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = models.StatusProcessing
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	outlineJSON, err := marshalOutline(p.Outline)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO presentations (`+presentationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.SystemPrompt,
		p.ContentOrientation,
		p.VisualStyle,
		p.Transcript,
		p.Title,
		string(p.Status),
		outlineJSON,
		nullableString(p.PDFURL),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("insert presentation: %w", err)
	}
	return nil
}

func (s *implStore) GetPresentation(ctx context.Context, id string) (*models.Presentation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+presentationColumns+` FROM presentations WHERE id = ?`, id)
	p, err := scanPresentation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("presentation %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get presentation: %w", err)
	}
	return p, nil
}

func (s *implStore) ListPresentations(ctx context.Context) ([]*models.Presentation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+presentationColumns+` FROM presentations ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}
	defer rows.Close()

	var out []*models.Presentation
	for rows.Next() {
		p, err := scanPresentation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan presentation: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate presentations: %w", err)
	}
	return out, nil
}

func (s *implStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE presentations SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTime(time.Now().UTC()), id,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return expectAffected(res, "presentation", id)
}

func (s *implStore) SaveOutline(ctx context.Context, id string, outline *models.Outline, status models.Status) error {
	outlineJSON, err := marshalOutline(outline)
	if err != nil {
		return err
	}
	title := ""
	if outline != nil {
		title = outline.Title
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE presentations SET outline_json = ?, title = ?, status = ?, updated_at = ? WHERE id = ?`,
		outlineJSON, title, string(status), formatTime(time.Now().UTC()), id,
	)
	if err != nil {
		return fmt.Errorf("save outline: %w", err)
	}
	return expectAffected(res, "presentation", id)
}

func (s *implStore) SetPDFURL(ctx context.Context, id, url string, status models.Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE presentations SET pdf_url = ?, status = ?, updated_at = ? WHERE id = ?`,
		nullableString(url), string(status), formatTime(time.Now().UTC()), id,
	)
	if err != nil {
		return fmt.Errorf("set pdf url: %w", err)
	}
	return expectAffected(res, "presentation", id)
}

func (s *implStore) DeletePresentation(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM presentations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete presentation: %w", err)
	}
	return expectAffected(res, "presentation", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPresentation(row rowScanner) (*models.Presentation, error) {
	var (
		p                    models.Presentation
		status               string
		outlineJSON, pdfURL  sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(
		&p.ID,
		&p.SystemPrompt,
		&p.ContentOrientation,
		&p.VisualStyle,
		&p.Transcript,
		&p.Title,
		&status,
		&outlineJSON,
		&pdfURL,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	p.Status = models.Status(status)
	p.PDFURL = pdfURL.String
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)

	if outlineJSON.Valid && outlineJSON.String != "" {
		var outline models.Outline
		if err := json.Unmarshal([]byte(outlineJSON.String), &outline); err != nil {
			return nil, fmt.Errorf("decode outline: %w", err)
		}
		p.Outline = &outline
	}
	return &p, nil
}
