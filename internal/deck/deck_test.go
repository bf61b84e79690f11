package deck

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting2slides/internal/logger"
	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

type fakeFetcher struct {
	data map[string][]byte
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if d, ok := f.data[rawURL]; ok {
		return d, nil
	}
	return nil, errors.New("could not download image: 404")
}

func testImage(t *testing.T, format string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 18))
	for x := 0; x < 32; x++ {
		for y := 0; y < 18; y++ {
			img.Set(x, y, color.RGBA{R: 0xd2, G: 0xdd, A: 0xff})
		}
	}
	var buf bytes.Buffer
	switch format {
	case "png":
		require.NoError(t, png.Encode(&buf, img))
	case "jpeg":
		require.NoError(t, jpeg.Encode(&buf, img, nil))
	}
	return buf.Bytes()
}

var rePage = regexp.MustCompile(`/Type /Page[^s]`)

func TestPDFOnePagePerSlide(t *testing.T) {
	fetcher := &fakeFetcher{data: map[string][]byte{
		"http://bucket/slide_1.png": testImage(t, "png"),
		"http://bucket/slide_2.jpg": testImage(t, "jpeg"),
		"http://bucket/broken.png":  []byte("not an image"),
	}}
	b := New(fetcher, logger.NewNop())

	slides := []models.Slide{
		{SlideNumber: 1, Title: "PNG", ImageURL: "http://bucket/slide_1.png"},
		{SlideNumber: 2, Title: "JPEG", ImageURL: "http://bucket/slide_2.jpg"},
		{SlideNumber: 3, Title: "Placeholder", Description: "Fallback text", ImageURL: PlaceholderURL("Placeholder")},
		{SlideNumber: 4, Title: "Reunión", Description: "Acentos y eñes"},
		{SlideNumber: 5, Title: "Broken", ImageURL: "http://bucket/broken.png"},
		{SlideNumber: 6, Title: "Missing", ImageURL: "http://bucket/gone.png"},
	}

	out, err := b.PDF(context.Background(), slides)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Len(t, rePage.FindAll(out, -1), len(slides))
}

func TestPDFNoSlides(t *testing.T) {
	b := New(&fakeFetcher{}, logger.NewNop())
	_, err := b.PDF(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrNoSlides)
}

func TestPDFHonoursCancellation(t *testing.T) {
	b := New(&fakeFetcher{}, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.PDF(ctx, []models.Slide{{SlideNumber: 1}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTMLDeck(t *testing.T) {
	b := New(&fakeFetcher{}, logger.NewNop())

	html, err := b.HTML([]models.Slide{
		{SlideNumber: 1, Title: "With image", ImageURL: "data:image/png;base64,AAAA"},
		{SlideNumber: 2, Title: "", Description: "<script>alert(1)</script>"},
		{SlideNumber: 3, Title: "Placeholder", ImageURL: PlaceholderURL("Placeholder")},
		{SlideNumber: 4, Title: "Bad scheme", ImageURL: "javascript:alert(1)"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<img src="data:image/png;base64,AAAA" alt="With image" />`)
	assert.Contains(t, html, "<h1>Slide 2</h1>")
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "<h1>Placeholder</h1>")
	assert.NotContains(t, html, "javascript:")
	assert.Equal(t, 4, strings.Count(html, `<div class="slide">`))
	assert.Contains(t, html, `<span class="slide-number">4</span>`)
}

func TestOutlineDocx(t *testing.T) {
	b := New(&fakeFetcher{}, logger.NewNop())

	data, err := b.OutlineDocx("Quarterly review", []models.Slide{
		{SlideNumber: 1, Title: "Intro", Description: "Agenda", ImagePrompt: "sunrise over city"},
		{SlideNumber: 2, Title: "Numbers"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "docx must be a zip archive")

	_, err = b.OutlineDocx("x", nil)
	assert.ErrorIs(t, err, models.ErrNoSlides)
}

func TestDetectImageType(t *testing.T) {
	got, err := detectImageType(testImage(t, "png"))
	require.NoError(t, err)
	assert.Equal(t, "PNG", got)

	got, err = detectImageType(testImage(t, "jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "JPG", got)

	_, err = detectImageType([]byte("<svg/>"))
	assert.Error(t, err)
}
