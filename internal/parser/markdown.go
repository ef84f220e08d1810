package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Setext headings
// become ATX headings; other blocks keep their source text.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var w blockWriter
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			w.heading(node.Level, inlineText(node, src))
		case *ast.FencedCodeBlock:
			w.code(string(node.Language(src)), string(blockLines(node, src)))
		case *ast.CodeBlock:
			w.code("", string(blockLines(node, src)))
		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				w.bullet(inlineText(item, src))
			}
		case *ast.ThematicBreak:
		default:
			w.block(sourceSpan(n, src))
		}
	}

	title := baseTitle(filename)
	if h := firstHeading(doc, src); h != "" {
		title = h
	}
	return &Document{Title: title, Text: w.String()}, nil
}

func blockLines(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return buf.Bytes()
}

// sourceSpan returns the raw source of a block, including nested blocks.
func sourceSpan(n ast.Node, src []byte) string {
	if n.Lines().Len() > 0 {
		return string(blockLines(n, src))
	}
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s := sourceSpan(c, src); s != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, "\n")
}

// inlineText flattens the text of n's inline descendants.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.CodeSpan:
			buf.WriteByte('`')
			for cc := t.FirstChild(); cc != nil; cc = cc.NextSibling() {
				if tt, ok := cc.(*ast.Text); ok {
					buf.Write(tt.Value(src))
				}
			}
			buf.WriteByte('`')
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(buf.String()), " ")
}

func firstHeading(doc ast.Node, src []byte) string {
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			return inlineText(h, src)
		}
	}
	return ""
}
