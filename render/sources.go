package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"idea2grow/model"
)

// SourceLines formats citations as a numbered list, one line per source,
// each truncated to width display cells.
func SourceLines(sources []model.Citation, width int) []string {
	if len(sources) == 0 {
		return nil
	}
	lines := make([]string, 0, len(sources))
	for i, src := range sources {
		line := fmt.Sprintf("%d. %s - %s", i+1, src.Title, src.URI)
		if width > 0 {
			line = runewidth.Truncate(line, width, "…")
		}
		lines = append(lines, line)
	}
	return lines
}

// Sources joins SourceLines under a "Sources" header. Empty input yields "".
func Sources(sources []model.Citation, width int) string {
	lines := SourceLines(sources, width)
	if len(lines) == 0 {
		return ""
	}
	return "Sources\n" + strings.Join(lines, "\n")
}
