package deck

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

// Page geometry in points.
const (
	pageWidth  = 1280.0
	pageHeight = 720.0
	pagePad    = 80.0
)

// Fallback palette: black background, lime accent, white body text.
var (
	colorBackground = [3]int{0, 0, 0}
	colorAccent     = [3]int{0xd2, 0xdd, 0x00}
	colorText       = [3]int{0xff, 0xff, 0xff}
)

func (b *implBuilder) PDF(ctx context.Context, slides []models.Slide) ([]byte, error) {
	if len(slides) == 0 {
		return nil, models.ErrNoSlides
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("meeting2slides", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, slide := range slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pdf.AddPage()

		drawn := false
		if slide.ImageURL != "" && !IsPlaceholder(slide.ImageURL) {
			var err error
			drawn, err = b.drawImage(ctx, pdf, i, slide)
			if err != nil {
				b.logger.Warn(ctx, "Slide %d image unusable, rendering text fallback: %v", slide.SlideNumber, err)
			}
		}
		if !drawn {
			drawFallback(pdf, tr, slide)
		}
		drawSlideNumber(pdf, slide.SlideNumber)

		if pdf.Err() {
			return nil, fmt.Errorf("render slide %d: %w", slide.SlideNumber, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawImage places the slide image full-bleed. It reports false when the
// image cannot be fetched or decoded so the caller can render a fallback.
func (b *implBuilder) drawImage(ctx context.Context, pdf *fpdf.Fpdf, index int, slide models.Slide) (bool, error) {
	data, err := b.fetcher.Fetch(ctx, slide.ImageURL)
	if err != nil {
		return false, err
	}

	imageType, err := detectImageType(data)
	if err != nil {
		return false, err
	}

	name := "slide-" + strconv.Itoa(index)
	opts := fpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if pdf.Err() {
		err := pdf.Error()
		pdf.ClearError()
		return false, fmt.Errorf("embed image: %w", err)
	}
	pdf.ImageOptions(name, 0, 0, pageWidth, pageHeight, false, opts, 0, "")
	return true, nil
}

// detectImageType validates the bytes and maps them to an fpdf image type.
func detectImageType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	switch format {
	case "png":
		return "PNG", nil
	case "jpeg":
		return "JPG", nil
	case "gif":
		return "GIF", nil
	default:
		return "", fmt.Errorf("unsupported image format %q", format)
	}
}

func drawFallback(pdf *fpdf.Fpdf, tr func(string) string, slide models.Slide) {
	pdf.SetFillColor(colorBackground[0], colorBackground[1], colorBackground[2])
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	title := strings.TrimSpace(slide.Title)
	if title == "" {
		title = "Slide " + strconv.Itoa(slide.SlideNumber)
	}

	pdf.SetTextColor(colorAccent[0], colorAccent[1], colorAccent[2])
	pdf.SetFont("Helvetica", "B", 48)
	pdf.SetXY(pagePad, pageHeight*0.25)
	pdf.MultiCell(pageWidth-2*pagePad, 58, tr(title), "", "C", false)

	if desc := strings.TrimSpace(slide.Description); desc != "" {
		pdf.SetTextColor(colorText[0], colorText[1], colorText[2])
		pdf.SetFont("Helvetica", "", 24)
		pdf.SetXY(pagePad, pdf.GetY()+30)
		pdf.MultiCell(pageWidth-2*pagePad, 36, tr(desc), "", "C", false)
	}
}

func drawSlideNumber(pdf *fpdf.Fpdf, number int) {
	pdf.SetTextColor(colorAccent[0], colorAccent[1], colorAccent[2])
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(pageWidth-140, pageHeight-50)
	pdf.CellFormat(100, 20, strconv.Itoa(number), "", 0, "R", false, 0, "")
}
