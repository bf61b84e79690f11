package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

var supportedFormats = []string{".txt", ".md", ".srt", ".vtt", ".pdf", ".docx"}

// Supported reports whether path has an extension the Reader understands.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

// Formats lists the supported extensions.
func Formats() []string {
	return append([]string(nil), supportedFormats...)
}

func (r *implReader) Read(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		text string
		err  error
	)
	switch ext {
	case ".txt", ".md":
		text, err = readFile(path)
	case ".srt", ".vtt":
		text, err = readFile(path)
		if err == nil {
			text = stripCues(text)
		}
	case ".pdf":
		text, err = r.convert(ctx, r.converters.PDF, path)
	case ".docx":
		text, err = r.convert(ctx, r.converters.DOCX, path)
	default:
		return "", fmt.Errorf("unsupported transcript format %q: %w", ext, models.ErrInvalidInput)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("transcript %s is empty: %w", filepath.Base(path), models.ErrInvalidInput)
	}

	r.logger.Debug(ctx, "Read transcript %s (%d chars)", path, len(text))
	return text, nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}

// convert runs the configured command with {input} replaced by the absolute file path.
func (r *implReader) convert(ctx context.Context, command []string, path string) (string, error) {
	if len(command) == 0 {
		return "", fmt.Errorf("no converter configured for %s", filepath.Ext(path))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve transcript path: %w", err)
	}

	args := make([]string, 0, len(command)-1)
	for _, arg := range command[1:] {
		args = append(args, strings.ReplaceAll(arg, "{input}", abs))
	}

	r.logger.Info(ctx, "Converting %s with %s", filepath.Base(path), command[0])
	out, err := r.executor.ExecuteInDir(ctx, filepath.Dir(abs), command[0], args...)
	if err != nil {
		return "", fmt.Errorf("convert transcript: %w", err)
	}
	return out, nil
}
