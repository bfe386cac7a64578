package label

import (
	"strings"
)

// Wrap breaks text into lines of at most width runes, splitting only at
// whitespace. A single word longer than width gets its own line rather
// than being broken mid-word. Empty or blank text wraps to no lines.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var line strings.Builder
	lineRunes := 0
	for _, w := range words {
		wlen := len([]rune(w))
		switch {
		case lineRunes == 0:
			line.WriteString(w)
			lineRunes = wlen
		case lineRunes+1+wlen <= width:
			line.WriteByte(' ')
			line.WriteString(w)
			lineRunes += 1 + wlen
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(w)
			lineRunes = wlen
		}
	}
	lines = append(lines, line.String())
	return lines
}
