package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// OutlineDocx writes the deck title, then per slide a numbered heading,
// its description and the visual direction used for the image.
func (b *implBuilder) OutlineDocx(title string, slides []models.Slide) ([]byte, error) {
	if len(slides) == 0 {
		return nil, models.ErrNoSlides
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("new document: %w", err)
	}

	if strings.TrimSpace(title) == "" {
		title = "Presentation outline"
	}
	addStyledRun(doc.AddParagraph(""), title, true, 16)

	for _, s := range slides {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), strconv.Itoa(s.SlideNumber)+". "+s.Title, true, 14)
		if desc := strings.TrimSpace(s.Description); desc != "" {
			addStyledRun(doc.AddParagraph(""), desc, false, fontSize)
		}
		if visual := strings.TrimSpace(s.ImagePrompt); visual != "" {
			p := doc.AddParagraph("")
			p.AddText("Visual: ").Font(fontName).Size(fontSize).Color("555555").Bold(true)
			p.AddText(visual).Font(fontName).Size(fontSize).Color("555555")
		}
	}

	// godocx saves to a path; round-trip through a temp dir to return bytes.
	dir, err := os.MkdirTemp("", "outline-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "outline.docx")
	if err := doc.SaveTo(out); err != nil {
		return nil, fmt.Errorf("save docx: %w", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	return data, nil
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
