package deck

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

var htmlDeck = template.Must(template.New("deck").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    @page { size: 1920px 1080px; margin: 0; }
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; }
    .slide {
      width: 1920px; height: 1080px; page-break-after: always; position: relative;
      background: #000; display: flex; align-items: center; justify-content: center;
    }
    .slide:last-child { page-break-after: avoid; }
    .slide img { width: 100%; height: 100%; object-fit: cover; }
    .slide-fallback {
      width: 100%; height: 100%; background: linear-gradient(135deg, #000 0%, #1a1a1a 100%);
      display: flex; flex-direction: column; align-items: center; justify-content: center;
      padding: 80px; text-align: center;
    }
    .slide-fallback h1 { color: #d2dd00; font-size: 64px; margin-bottom: 40px; font-weight: 700; }
    .slide-fallback p { color: #fff; font-size: 32px; line-height: 1.6; max-width: 1400px; }
    .slide-number { position: absolute; bottom: 30px; right: 40px; color: #d2dd00; font-size: 24px; font-weight: 600; }
  </style>
</head>
<body>
{{- range .}}
  <div class="slide">
    {{- if .Image}}
    <img src="{{.Image}}" alt="{{.Title}}" />
    {{- else}}
    <div class="slide-fallback">
      <h1>{{.Title}}</h1>
      <p>{{.Description}}</p>
    </div>
    {{- end}}
    <span class="slide-number">{{.Number}}</span>
  </div>
{{- end}}
</body>
</html>
`))

type htmlSlide struct {
	Number      int
	Title       string
	Description string
	Image       template.URL
}

func (b *implBuilder) HTML(slides []models.Slide) (string, error) {
	if len(slides) == 0 {
		return "", models.ErrNoSlides
	}

	view := make([]htmlSlide, 0, len(slides))
	for _, s := range slides {
		title := strings.TrimSpace(s.Title)
		if title == "" {
			title = fmt.Sprintf("Slide %d", s.SlideNumber)
		}
		hs := htmlSlide{Number: s.SlideNumber, Title: title, Description: s.Description}
		if embeddable(s.ImageURL) {
			// Image URLs come from our own store: bucket URLs or data: URLs.
			hs.Image = template.URL(s.ImageURL)
		}
		view = append(view, hs)
	}

	var buf bytes.Buffer
	if err := htmlDeck.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render html deck: %w", err)
	}
	return buf.String(), nil
}

func embeddable(rawURL string) bool {
	if rawURL == "" || IsPlaceholder(rawURL) {
		return false
	}
	for _, prefix := range []string{"data:image/", "https://", "http://", "/"} {
		if strings.HasPrefix(rawURL, prefix) {
			return true
		}
	}
	return false
}
