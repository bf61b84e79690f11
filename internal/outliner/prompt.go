package outliner

import (
	"fmt"
	"strings"
)

const outlinePrompt = `RETURN ONLY VALID JSON. NO MARKDOWN. NO EXTRA TEXT.

SCHEMA:
{
  "title": string,
  "slides": [
    {
      "slideNumber": number,
      "title": string,
      "description": string,
      "imagePrompt": string
    }
  ]
}

RULES:
- %d to %d slides.
- description: short, professional slide text.
- imagePrompt: visual instruction matching the style; avoid legible text in the image.

SYSTEM PROMPT:
%s

ORIENTATION:
%s

VISUAL STYLE:
%s

TRANSCRIPT:
%s`

func (o *implOutliner) buildPrompt(req Request) string {
	sys := orDefault(req.SystemPrompt, o.defaults.SystemPrompt)
	orientation := orDefault(req.ContentOrientation, o.defaults.ContentOrientation)
	style := orDefault(req.VisualStyle, o.defaults.VisualStyle)

	return strings.TrimSpace(fmt.Sprintf(outlinePrompt,
		o.minSlides, o.maxSlides,
		sys, orientation, style,
		strings.TrimSpace(req.Transcript),
	))
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
