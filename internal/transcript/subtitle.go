package transcript

import (
	"regexp"
	"strings"
)

var (
	reCueIndex = regexp.MustCompile(`^\d+$`)
	reCueTime  = regexp.MustCompile(`^(\d{2}:)?\d{2}:\d{2}[.,]\d{3}\s*-->`)
	reCueTag   = regexp.MustCompile(`<[^>]+>`)
)

// stripCues keeps only the spoken text of an SRT or WebVTT file.
// Cue numbers, timings, the WEBVTT header, NOTE/STYLE/REGION blocks and
// repeated lines are dropped. A number is a cue index only when a timing line follows it.
func stripCues(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(strings.TrimPrefix(lines[i], "\ufeff"))
	}

	var out []string
	skipBlock := false
	blockStart := true
	last := ""
	for i, line := range lines {
		if line == "" {
			skipBlock = false
			blockStart = true
			continue
		}
		if skipBlock {
			continue
		}
		if blockStart && isMetadataBlock(line, i == 0) {
			skipBlock = true
			continue
		}
		blockStart = false

		if reCueTime.MatchString(line) {
			continue
		}
		if reCueIndex.MatchString(line) && i+1 < len(lines) && reCueTime.MatchString(lines[i+1]) {
			continue
		}

		text := strings.TrimSpace(reCueTag.ReplaceAllString(line, ""))
		if text == "" || text == last {
			continue
		}
		last = text
		out = append(out, text)
	}

	return strings.Join(out, "\n")
}

func isMetadataBlock(line string, first bool) bool {
	if first && strings.HasPrefix(line, "WEBVTT") {
		return true
	}
	if line == "STYLE" || line == "REGION" {
		return true
	}
	return line == "NOTE" || strings.HasPrefix(line, "NOTE ") || strings.HasPrefix(line, "NOTE\t")
}
