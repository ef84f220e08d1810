package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
)

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// HTMLParser handles HTML files. Navigation and script elements are
// dropped and the body is converted to markdown. If conversion fails the
// body is flattened by walkBlocks instead.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := baseTitle(filename)
	if t := findTitle(doc); t != "" {
		title = t
	}

	body := findBody(doc)
	if body == nil {
		body = doc
	}
	prune(body)

	return &Document{Title: title, Text: htmlToMarkdown(body)}, nil
}

func htmlToMarkdown(body *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, body); err == nil {
		md, err := mdConverter.ConvertString(buf.String())
		if md = strings.TrimSpace(md); err == nil && md != "" {
			return md
		}
	}
	return walkBlocks(body)
}

// prune removes elements that never carry document content.
func prune(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			switch c.Data {
			case "script", "style", "nav", "footer", "header", "head", "noscript":
				n.RemoveChild(c)
				c = next
				continue
			}
		}
		prune(c)
		c = next
	}
}

// walkBlocks rewrites headings, list items and preformatted blocks as
// their markdown equivalents and keeps other block text as paragraphs.
func walkBlocks(root *html.Node) string {
	var w blockWriter
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				w.heading(level, textContent(n))
				return
			}

			switch n.Data {
			case "pre":
				w.code(codeLanguage(n), rawText(n))
				return
			case "li":
				w.bullet(textContent(n))
				return
			case "p", "td", "th", "blockquote", "dt", "dd", "figcaption":
				w.block(textContent(n))
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return w.String()
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// textContent collapses whitespace in the text beneath n.
func textContent(n *html.Node) string {
	return strings.Join(strings.Fields(rawText(n)), " ")
}

func rawText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			buf.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

// codeLanguage reads a "language-x" or "lang-x" class from a pre block
// or its code child.
func codeLanguage(pre *html.Node) string {
	nodes := []*html.Node{pre}
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "code" {
			nodes = append(nodes, c)
		}
	}
	for _, n := range nodes {
		for _, a := range n.Attr {
			if a.Key != "class" {
				continue
			}
			for _, cls := range strings.Fields(a.Val) {
				for _, prefix := range []string{"language-", "lang-"} {
					if lang, ok := strings.CutPrefix(cls, prefix); ok && lang != "" {
						return lang
					}
				}
			}
		}
	}
	return ""
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
