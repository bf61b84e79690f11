package imagegen

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

// BuildPrompt renders the image prompt for a slide. A blank style uses fallbackStyle.
func BuildPrompt(slide models.Slide, style, fallbackStyle string) string {
	if strings.TrimSpace(style) == "" {
		style = fallbackStyle
	}

	var b strings.Builder
	b.WriteString("Create a professional presentation slide image.\n")
	fmt.Fprintf(&b, "Style: %s\n", strings.TrimSpace(style))
	fmt.Fprintf(&b, "Title: %s\n", slide.Title)
	fmt.Fprintf(&b, "Content: %s\n", slide.Description)
	if direction := strings.TrimSpace(slide.ImagePrompt); direction != "" {
		fmt.Fprintf(&b, "Visual direction: %s\n", direction)
	}
	b.WriteString("The image should be suitable for a business presentation, with clear visual hierarchy,\n")
	b.WriteString("infographic elements, and a sophisticated editorial design.\n")
	b.WriteString("Use lime green (#d2dd00) as accent color, black for text/elements, white for background areas.\n")
	fmt.Fprintf(&b, "Aspect ratio: %s, presentation slide format (%dx%d).", aspectRatio, imageWidth, imageHeight)
	return b.String()
}
