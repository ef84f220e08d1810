// Package render turns StructuredContent into markdown and HTML for display.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docshape/internal/content"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts structured documents with a goldmark pipeline.
// Raw HTML in section bodies is omitted and the result is sanitized.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

// Markdown rebuilds a markdown document from sc. Section bodies are
// emitted verbatim beneath their headings.
func Markdown(sc content.StructuredContent) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", oneLine(sc.MainTopic))

	if sc.Summary != "" {
		fmt.Fprintf(&buf, "> %s\n\n", inline(sc.Summary))
	}
	if meta := metaLine(sc); meta != "" {
		fmt.Fprintf(&buf, "*%s*\n\n", meta)
	}

	for _, s := range sc.Sections {
		writeSection(&buf, s, 2)
	}

	writeList(&buf, "Key takeaways", sc.KeyTakeaways)
	writeList(&buf, "Related topics", sc.RelatedTopics)
	return strings.TrimRight(buf.String(), "\n") + "\n"
}

// HTML writes sc as an HTML fragment.
func (r *Renderer) HTML(w io.Writer, sc content.StructuredContent) error {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(Markdown(sc)), &buf); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	if _, err := w.Write(r.policy.SanitizeBytes(buf.Bytes())); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

func writeSection(buf *bytes.Buffer, s content.Section, level int) {
	level = min(level, 6)
	fmt.Fprintf(buf, "%s %s\n\n", strings.Repeat("#", level), oneLine(s.Title))
	if body := strings.TrimSpace(s.Content); body != "" {
		buf.WriteString(body)
		buf.WriteString("\n\n")
	}
	for _, sub := range s.Subsections {
		writeSection(buf, sub, level+1)
	}
}

func writeList(buf *bytes.Buffer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(buf, "## %s\n\n", title)
	for _, it := range items {
		fmt.Fprintf(buf, "- %s\n", inline(it))
	}
	buf.WriteString("\n")
}

func metaLine(sc content.StructuredContent) string {
	var parts []string
	if sc.Difficulty != "" {
		parts = append(parts, string(sc.Difficulty))
	}
	if sc.EstimatedReadTime != "" {
		parts = append(parts, sc.EstimatedReadTime)
	}
	return strings.Join(parts, " · ")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// inline flattens s to one line and escapes a leading block marker so it
// stays inline text inside a quote or list item.
func inline(s string) string {
	s = oneLine(s)
	if s != "" && strings.ContainsRune("#>-+*", rune(s[0])) {
		return `\` + s
	}
	return s
}
