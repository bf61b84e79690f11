package models

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a presentation, slide or prompt does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoSlides is returned when a stage needs slides and the presentation has none.
	ErrNoSlides = errors.New("presentation has no slides")
	// ErrNoAPIKeys is returned by the generation clients when no Gemini key is configured.
	ErrNoAPIKeys = errors.New("no Gemini API keys configured")
)

// IsRateLimited reports whether a provider error is a 429 / quota rejection.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
