package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

// timeLayout is fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func marshalOutline(outline *models.Outline) (any, error) {
	if outline == nil {
		return nil, nil
	}
	data, err := json.Marshal(outline)
	if err != nil {
		return nil, fmt.Errorf("encode outline: %w", err)
	}
	return string(data), nil
}

func expectAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
	}
	return nil
}
