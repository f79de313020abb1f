package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Headings are
// emitted on their own line without the leading #'s, so they read as
// section headings in the flattened text.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var lines []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if t := blockText(n, src); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// blockText flattens a block node. Container blocks (lists, quotes) put
// each child on its own line.
func blockText(n ast.Node, src []byte) string {
	if n.Type() != ast.TypeBlock {
		return strings.TrimSpace(inlineText(n, src))
	}

	if c := n.FirstChild(); c != nil && c.Type() == ast.TypeBlock {
		var parts []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t := blockText(c, src); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, "\n")
	}

	// Paragraphs and headings carry inline children; code and raw HTML
	// blocks only have lines.
	if n.HasChildren() {
		var buf bytes.Buffer
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			buf.WriteString(inlineText(c, src))
		}
		return strings.TrimSpace(buf.String())
	}

	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return strings.TrimSpace(buf.String())
}

func inlineText(n ast.Node, src []byte) string {
	switch node := n.(type) {
	case *ast.Text:
		s := string(node.Segment.Value(src))
		if node.HardLineBreak() || node.SoftLineBreak() {
			s += "\n"
		}
		return s
	case *ast.String:
		return string(node.Value)
	}

	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		buf.WriteString(inlineText(c, src))
	}
	return buf.String()
}
