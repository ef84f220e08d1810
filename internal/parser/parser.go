package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Document is the plain text of an uploaded file. Headings are rewritten
// as markdown "#" lines so the content segmenter can find them.
type Document struct {
	Title string
	Text  string
}

// Parser converts raw document bytes into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, pdfFallback bool) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: pdfFallback}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

func baseTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// blockWriter joins blocks with a blank line between them.
type blockWriter struct {
	sb strings.Builder
}

func (w *blockWriter) block(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if w.sb.Len() > 0 {
		w.sb.WriteString("\n\n")
	}
	w.sb.WriteString(s)
}

func (w *blockWriter) heading(level int, title string) {
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return
	}
	level = min(max(level, 1), 6)
	w.block(strings.Repeat("#", level) + " " + title)
}

func (w *blockWriter) bullet(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	w.block("- " + s)
}

// code writes a fenced block without trimming the body's indentation.
func (w *blockWriter) code(lang, body string) {
	body = strings.Trim(body, "\n")
	if strings.TrimSpace(body) == "" {
		return
	}
	if w.sb.Len() > 0 {
		w.sb.WriteString("\n\n")
	}
	w.sb.WriteString("```" + lang + "\n" + body + "\n```")
}

func (w *blockWriter) String() string { return w.sb.String() }
