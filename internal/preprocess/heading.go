package preprocess

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/booktrace/mdbook-trace/internal/book"
)

// numberHeading prepends the chapter's hierarchical number to its first
// top-level ATX heading (`# Title` becomes `# 1.2 Title`). Chapters
// without an assigned number are left unchanged.
func (p *Preprocessor) numberHeading(ch *book.Chapter) {
	if len(ch.Number) == 0 {
		return
	}

	src := []byte(ch.Content)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 || h.Lines().Len() == 0 {
			continue
		}
		seg := h.Lines().At(0)

		// Setext headings ("Title\n===") parse as level 1 too; only
		// rewrite lines that actually start with '#'.
		start := lineStart(src, seg.Start)
		if start >= len(src) || src[start] != '#' {
			continue
		}
		end := lineEnd(src, seg.Start)

		stop := seg.Stop
		if stop > end {
			stop = end
		}
		title := strings.TrimSpace(string(src[seg.Start:stop]))
		ch.Content = string(src[:start]) + "# " + ch.Number.String() + " " + title + string(src[end:])
		return
	}
}

// lineStart returns the index of the first byte of the line containing
// pos.
func lineStart(src []byte, pos int) int {
	for pos > 0 && src[pos-1] != '\n' {
		pos--
	}
	return pos
}

// lineEnd returns the index just past the last content byte of the line
// containing pos, excluding its newline.
func lineEnd(src []byte, pos int) int {
	for pos < len(src) && src[pos] != '\n' {
		pos++
	}
	return pos
}
