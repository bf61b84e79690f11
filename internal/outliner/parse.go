package outliner

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/meeting2slides/internal/models"
)

// reJSONObject grabs everything from the first '{' to the last '}'.
var reJSONObject = regexp.MustCompile(`(?s)\{.*\}`)

type rawOutline struct {
	Title  any        `json:"title"`
	Slides []rawSlide `json:"slides"`
}

type rawSlide struct {
	SlideNumber any `json:"slideNumber"`
	Title       any `json:"title"`
	Description any `json:"description"`
	ImagePrompt any `json:"imagePrompt"`
}

// parseOutline decodes the model reply, tolerating prose or code fences around the JSON.
func parseOutline(text string) (*models.Outline, error) {
	var raw rawOutline
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		m := reJSONObject.FindString(text)
		if m == "" {
			return nil, fmt.Errorf("model did not return valid JSON")
		}
		raw = rawOutline{}
		if err := json.Unmarshal([]byte(m), &raw); err != nil {
			return nil, fmt.Errorf("model did not return valid JSON: %w", err)
		}
	}
	return normalize(raw), nil
}

// normalize coerces loosely typed fields and makes slide numbers unique and positive.
func normalize(raw rawOutline) *models.Outline {
	out := &models.Outline{
		Title:  asString(raw.Title),
		Slides: make([]models.OutlineSlide, 0, len(raw.Slides)),
	}

	used := make(map[int]bool, len(raw.Slides))
	for i, s := range raw.Slides {
		n, ok := asInt(s.SlideNumber)
		if !ok || n <= 0 || used[n] {
			n = i + 1
			for used[n] {
				n++
			}
		}
		used[n] = true

		out.Slides = append(out.Slides, models.OutlineSlide{
			SlideNumber: n,
			Title:       asString(s.Title),
			Description: asString(s.Description),
			ImagePrompt: asString(s.ImagePrompt),
		})
	}
	return out
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t != math.Trunc(t) {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
