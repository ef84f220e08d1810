package content

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSegment_MarkdownHeadings(t *testing.T) {
	input := "# One\nalpha\n## Two\nbeta\n### Three\ngamma"
	sections := Segment(input, false)

	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	want := []struct{ title, content string }{
		{"One", "alpha"},
		{"Two", "beta"},
		{"Three", "gamma"},
	}
	for i, w := range want {
		if sections[i].Title != w.title {
			t.Errorf("section[%d]: expected title %q, got %q", i, w.title, sections[i].Title)
		}
		if sections[i].Content != w.content {
			t.Errorf("section[%d]: expected content %q, got %q", i, w.content, sections[i].Content)
		}
	}
}

func TestSegment_NoHeadersFallsBack(t *testing.T) {
	input := "just some lowercase text.\nmore lowercase text here."
	sections := Segment(input, false)

	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != FallbackSectionTitle {
		t.Errorf("expected title %q, got %q", FallbackSectionTitle, sections[0].Title)
	}
	if sections[0].Content != input {
		t.Errorf("expected content to be the raw text, got %q", sections[0].Content)
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	sections := Segment("", true)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section for empty input, got %d", len(sections))
	}
	if sections[0].KeyPoints == nil || sections[0].CodeSnippets == nil || sections[0].Examples == nil {
		t.Error("expected empty, non-nil collections")
	}
}

func TestSegment_TextBeforeFirstHeaderIsNotASection(t *testing.T) {
	sections := Segment("intro text here\n# First\nbody", false)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "First" || sections[0].Content != "body" {
		t.Errorf("unexpected section %+v", sections[0])
	}
}

func TestSegment_PreservesOrderAndCRLF(t *testing.T) {
	sections := Segment("## Zeta\r\nlast letter\r\n## Alpha\r\nfirst letter\r\n", false)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "Zeta" || sections[1].Title != "Alpha" {
		t.Errorf("expected order Zeta, Alpha; got %q, %q", sections[0].Title, sections[1].Title)
	}
	if sections[1].Content != "first letter" {
		t.Errorf("expected content %q, got %q", "first letter", sections[1].Content)
	}
}

func TestSegment_KeyPointsCapped(t *testing.T) {
	input := "# List\n- first item\n* second item\n+ third item\n1. fourth item\n2 fifth item\n- sixth item"
	sections := Segment(input, false)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	want := []string{"first item", "second item", "third item", "fourth item", "fifth item"}
	got := sections[0].KeyPoints
	if len(got) != len(want) {
		t.Fatalf("expected %d key points, got %d: %v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("keyPoints[%d]: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestSegment_FencedCodeRoundTrip(t *testing.T) {
	inputs := []string{
		"some intro prose\n```python\nprint(1)\n```\nmore prose after",
		"# Code\nhere is code:\n```python\nprint(1)\n```\nthanks",
		"```python\nprint(1)\n```",
	}
	for _, input := range inputs {
		var snippets []CodeSnippet
		for _, s := range Segment(input, false) {
			snippets = append(snippets, s.CodeSnippets...)
		}
		if len(snippets) != 1 {
			t.Fatalf("input %q: expected 1 snippet, got %d", input, len(snippets))
		}
		if snippets[0].Language != "python" {
			t.Errorf("input %q: expected language python, got %q", input, snippets[0].Language)
		}
		if snippets[0].Code != "print(1)" {
			t.Errorf("input %q: expected code %q, got %q", input, "print(1)", snippets[0].Code)
		}
	}
}

func TestCodeSnippets_PreservesIndentation(t *testing.T) {
	body := "```go\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n```"
	snippets := CodeSnippets(body)
	if len(snippets) != 1 {
		t.Fatalf("expected 1 snippet, got %d", len(snippets))
	}
	want := "func main() {\n\tfmt.Println(\"hi\")\n}"
	if snippets[0].Code != want {
		t.Errorf("expected %q, got %q", want, snippets[0].Code)
	}
}

func TestCodeSnippets_DefaultLanguage(t *testing.T) {
	snippets := CodeSnippets("use `x`\n```\ncode\n```")
	if len(snippets) != 1 {
		t.Fatalf("expected only the fenced snippet, got %d", len(snippets))
	}
	if snippets[0].Language != "text" || snippets[0].Code != "code" {
		t.Errorf("unexpected snippet %+v", snippets[0])
	}
}

func TestCodeSnippets_InlineWhenNoFence(t *testing.T) {
	snippets := CodeSnippets("run `go build` then `go test` and `go vet` and `gofmt`")
	if len(snippets) != 3 {
		t.Fatalf("expected 3 inline snippets, got %d", len(snippets))
	}
	want := []string{"go build", "go test", "go vet"}
	for i, w := range want {
		if snippets[i].Code != w {
			t.Errorf("snippet[%d]: expected %q, got %q", i, w, snippets[i].Code)
		}
		if snippets[i].Description != inlineDescription {
			t.Errorf("snippet[%d]: expected description %q, got %q", i, inlineDescription, snippets[i].Description)
		}
	}
}

func TestSegment_Examples(t *testing.T) {
	input := "# Ideas\npor ejemplo: usar mapas. Otro ejemplo: usar slices. como: canales. example: goroutines."

	sections := Segment(input, true)
	got := sections[0].Examples
	if len(got) != 3 {
		t.Fatalf("expected 3 examples, got %d: %v", len(got), got)
	}
	if got[0] != "ejemplo: usar mapas." {
		t.Errorf("expected first example %q, got %q", "ejemplo: usar mapas.", got[0])
	}

	sections = Segment(input, false)
	if sections[0].Examples != nil {
		t.Errorf("expected no examples when not requested, got %v", sections[0].Examples)
	}
}

func TestSection_EmptyCollectionsEncodeAsArrays(t *testing.T) {
	sections := Segment("# Empty\nnothing to see", false)
	b, err := json.Marshal(sections[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"keyPoints":[]`) || !strings.Contains(s, `"codeSnippets":[]`) {
		t.Errorf("expected empty arrays in %s", s)
	}
}
