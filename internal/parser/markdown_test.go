package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_Headings(t *testing.T) {
	input := `# Title

Intro text.

Section A
---------

Section A content.

### Subsection A1

Subsection A1 content.
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "Title" {
		t.Errorf("expected title %q, got %q", "Title", doc.Title)
	}
	want := "# Title\n\nIntro text.\n\n## Section A\n\nSection A content.\n\n### Subsection A1\n\nSubsection A1 content."
	if doc.Text != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, doc.Text)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := "Just some plain text.\n\nAnother paragraph here."

	doc, err := (&MarkdownParser{}).Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "plain" {
		t.Errorf("expected title %q, got %q", "plain", doc.Title)
	}
	if doc.Text != input {
		t.Errorf("expected %q, got %q", input, doc.Text)
	}
}

func TestMarkdownParser_CodeBlocksAndLists(t *testing.T) {
	input := "# API Reference\n\nList of endpoints:\n\n* GET /api/users\n* POST /api/users\n\n```go\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n```\n\nMore text after code.\n"

	doc, err := (&MarkdownParser{}).Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"- GET /api/users\n\n- POST /api/users",
		"```go\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n```",
		"More text after code.",
	} {
		if !strings.Contains(doc.Text, want) {
			t.Errorf("expected text to contain %q, got %q", want, doc.Text)
		}
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	doc, err := (&MarkdownParser{}).Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"dir/plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		doc, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
