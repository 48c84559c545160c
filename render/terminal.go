package render

import (
	"regexp"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
)

var mdLinkRegex = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)

// Terminal renders content as ANSI text wrapped to width.
//
// Markdown links are flattened to their URL and autolinking is off so the
// terminal emulator handles URL detection.
func Terminal(content string, width int) string {
	if width < 20 {
		width = 20
	}
	content = mdLinkRegex.ReplaceAllString(content, "$1 ($2)")

	ext := (markdown.Extensions() | parser.NoEmptyLineBeforeBlock) &^ parser.Autolink
	doc := parser.NewWithExtensions(ext).Parse([]byte(content))
	r := markdown.NewRenderer(width, 0)
	rendered := string(gomarkdown.Render(doc, r))

	return strings.TrimRight(rendered, "\n")
}

// Plain renders blocks without ANSI styling: bold spans keep their **
// markers and list items get a bullet.
func Plain(blocks []Block) string {
	lines := make([]string, 0, len(blocks))
	for i, b := range blocks {
		var sb strings.Builder
		if b.Kind == BlockListItem {
			sb.WriteString("• ")
		} else if i > 0 {
			lines = append(lines, "")
		}
		for _, s := range b.Spans {
			if s.Bold {
				sb.WriteString("**" + s.Text + "**")
			} else {
				sb.WriteString(s.Text)
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}
