// Package render turns answer text into display form.
//
// Answers use a small markup subset: **bold** spans, "* " or "- " list items
// and blank-line paragraph breaks. Parse exposes that structure as blocks
// and spans; Terminal produces ANSI output for the chat view.
package render

import (
	"strings"

	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockListItem
)

// Span is a run of text with uniform weight.
type Span struct {
	Text string
	Bold bool
}

// Block is a paragraph or a single list item.
type Block struct {
	Kind  BlockKind
	Spans []Span
}

// Text returns the block's text without markup.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

const markupExtensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock

func newParser() *parser.Parser {
	return parser.NewWithExtensions(markupExtensions)
}

// Parse splits content into blocks. Nested lists are flattened into
// consecutive list items; headings become bold paragraphs.
func Parse(content string) []Block {
	doc := gomarkdown.Parse([]byte(content), newParser())

	var blocks []Block
	for _, child := range doc.GetChildren() {
		blocks = appendBlocks(blocks, child)
	}
	return blocks
}

func appendBlocks(blocks []Block, node ast.Node) []Block {
	switch n := node.(type) {
	case *ast.List:
		for _, item := range n.GetChildren() {
			blocks = appendListItem(blocks, item)
		}
		return blocks
	case *ast.Heading:
		return appendBlock(blocks, BlockParagraph, collectSpans(nil, n, true))
	default:
		return appendBlock(blocks, BlockParagraph, collectSpans(nil, n, false))
	}
}

func appendListItem(blocks []Block, item ast.Node) []Block {
	var spans []Span
	var nested []ast.Node
	for _, child := range item.GetChildren() {
		if _, ok := child.(*ast.List); ok {
			nested = append(nested, child)
			continue
		}
		if len(spans) > 0 {
			spans = append(spans, Span{Text: " "})
		}
		spans = collectSpans(spans, child, false)
	}
	blocks = appendBlock(blocks, BlockListItem, spans)
	for _, list := range nested {
		blocks = appendBlocks(blocks, list)
	}
	return blocks
}

func appendBlock(blocks []Block, kind BlockKind, spans []Span) []Block {
	spans = mergeSpans(spans)
	if len(spans) == 0 {
		return blocks
	}
	return append(blocks, Block{Kind: kind, Spans: spans})
}

func collectSpans(spans []Span, node ast.Node, bold bool) []Span {
	switch n := node.(type) {
	case *ast.Strong:
		bold = true
	case *ast.Softbreak, *ast.Hardbreak:
		return append(spans, Span{Text: "\n", Bold: bold})
	case *ast.Text:
		return appendText(spans, string(n.Literal), bold)
	case *ast.Code:
		return appendText(spans, string(n.Literal), bold)
	}

	if leaf := node.AsLeaf(); leaf != nil {
		return appendText(spans, string(leaf.Literal), bold)
	}
	for _, child := range node.GetChildren() {
		spans = collectSpans(spans, child, bold)
	}
	return spans
}

func appendText(spans []Span, text string, bold bool) []Span {
	if text == "" {
		return spans
	}
	return append(spans, Span{Text: text, Bold: bold})
}

// mergeSpans joins neighbours of equal weight and trims the block edges.
func mergeSpans(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if n := len(out); n > 0 && out[n-1].Bold == s.Bold {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}

	for len(out) > 0 {
		out[0].Text = strings.TrimLeft(out[0].Text, " \n")
		if out[0].Text != "" {
			break
		}
		out = out[1:]
	}
	for len(out) > 0 {
		last := len(out) - 1
		out[last].Text = strings.TrimRight(out[last].Text, " \n")
		if out[last].Text != "" {
			break
		}
		out = out[:last]
	}
	return out
}
