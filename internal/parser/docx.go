package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Paragraphs styled as headings become
// markdown headings; table cells become paragraphs.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*Document, error) {
	// go-docx needs a ReaderAt and size.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var w blockWriter
	title := ""
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			text := docxParagraphText(it)
			if text == "" {
				continue
			}
			if level := docxHeadingLevel(it); level > 0 {
				if title == "" && level == 1 {
					title = text
				}
				w.heading(level, text)
			} else if docxIsListItem(it) {
				w.bullet(text)
			} else {
				w.block(text)
			}
		case *docx.Table:
			for _, row := range it.TableRows {
				for _, cell := range row.TableCells {
					for _, para := range cell.Paragraphs {
						w.block(docxParagraphText(para))
					}
				}
			}
		}
	}

	if title == "" {
		title = baseTitle(filename)
	}
	return &Document{Title: title, Text: w.String()}, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if style == "title" {
		return 1
	}
	if rest, ok := strings.CutPrefix(style, "heading"); ok && len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
		return int(rest[0] - '0')
	}
	return 0
}

func docxIsListItem(para *docx.Paragraph) bool {
	if para.Properties == nil || para.Properties.Style == nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(para.Properties.Style.Val), "list")
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
