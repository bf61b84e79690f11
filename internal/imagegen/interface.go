package imagegen

import (
	"context"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

// Image is a generated picture and its MIME type.
type Image struct {
	Data     []byte
	MIMEType string
}

// Generator renders one illustration per slide.
type Generator interface {
	Generate(ctx context.Context, slide models.Slide, visualStyle string) (*Image, error)
}
