package content

import (
	"math"
	"strings"
	"testing"
)

var processInputs = []string{
	"",
	"   ",
	"plain text without any structure at all",
	"# Title\n\nSome content.\n\n## Next\n\n- item one\n- item two\n",
	"Intro:\nIt is also related to testing. Es importante recordar esto siempre.\n```go\nfmt.Println(1)\n```",
	strings.Repeat("- bullet that matters\n", 20) + strings.Repeat("also one more thing. ", 20),
	"{\"answer\": \"not prose\"}",
}

func TestProcess_AlwaysHasSections(t *testing.T) {
	for _, input := range processInputs {
		sc := NewProcessor(nil).Process(input, true)
		if len(sc.Sections) < 1 {
			t.Errorf("input %q: expected at least one section", input)
		}
	}
}

func TestProcess_LengthCaps(t *testing.T) {
	for _, input := range processInputs {
		sc := NewProcessor(nil).Process(input, true)
		if len(sc.KeyTakeaways) > 5 {
			t.Errorf("input %q: %d takeaways exceeds 5", input, len(sc.KeyTakeaways))
		}
		if len(sc.RelatedTopics) > 5 {
			t.Errorf("input %q: %d related topics exceeds 5", input, len(sc.RelatedTopics))
		}
		for _, s := range sc.Sections {
			if len(s.Examples) > 3 {
				t.Errorf("input %q: section %q has %d examples", input, s.Title, len(s.Examples))
			}
		}
	}
}

func TestProcess_HeadingCountMatchesSections(t *testing.T) {
	input := "# a heading\nbody one\n## another heading\nbody two\n### third heading\nbody three\n#### fourth heading\n"
	sc := NewProcessor(nil).Process(input, false)
	if len(sc.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(sc.Sections))
	}
}

func TestProcess_DocumentFeatures(t *testing.T) {
	input := "# Working With Channels\n\nChannels are essential for goroutine communication. They are also similar to pipes.\n\n- close channels from the sender\n- never close a nil channel\n"
	sc := NewProcessor(nil).Process(input, false)

	if sc.MainTopic != "Working With Channels" {
		t.Errorf("expected main topic %q, got %q", "Working With Channels", sc.MainTopic)
	}
	if sc.Difficulty != Beginner {
		t.Errorf("expected beginner, got %s", sc.Difficulty)
	}
	if sc.EstimatedReadTime != "1 minuto" {
		t.Errorf("expected read time %q, got %q", "1 minuto", sc.EstimatedReadTime)
	}
	if len(sc.KeyTakeaways) == 0 {
		t.Error("expected key takeaways")
	}
	if sc.Summary == "" || !strings.HasSuffix(sc.Summary, ".") {
		t.Errorf("expected a summary ending in a period, got %q", sc.Summary)
	}
}

func TestProcess_PanicUsesFallback(t *testing.T) {
	raw := strings.Repeat("a", 300)
	p := NewProcessor(nil)
	p.segment = func(string, bool) []Section { panic("boom") }

	sc := p.Process(raw, false)

	if sc.MainTopic != panicMainTopic {
		t.Errorf("expected main topic %q, got %q", panicMainTopic, sc.MainTopic)
	}
	if len(sc.Sections) != 1 || sc.Sections[0].Content != raw {
		t.Fatalf("expected one section holding the raw text, got %+v", sc.Sections)
	}
	if sc.Sections[0].Title != panicSectionTitle {
		t.Errorf("expected title %q, got %q", panicSectionTitle, sc.Sections[0].Title)
	}
	if want := strings.Repeat("a", 200) + "..."; sc.Summary != want {
		t.Errorf("expected truncated summary, got %q", sc.Summary)
	}
	if sc.KeyTakeaways == nil {
		t.Error("expected non-nil key takeaways")
	}
}

func TestConfidence(t *testing.T) {
	if got := Confidence("short"); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("expected 0.3, got %f", got)
	}
	rich := "# Heading\n\n1. step\n\nPor ejemplo esto.\n```go\nx\n```\n" + strings.Repeat("filler ", 100)
	if got := Confidence(rich); got != 1 {
		t.Errorf("expected clamp to 1, got %f", got)
	}
}

func TestQuality(t *testing.T) {
	if got := Quality(Fallback("")); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected 0.5 for fallback, got %f", got)
	}
	sc := StructuredContent{
		Summary:      strings.Repeat("s", 60),
		KeyTakeaways: []string{"x"},
		Sections: []Section{
			{Title: "a", CodeSnippets: []CodeSnippet{{Language: "go", Code: "x"}}},
			{Title: "b", Examples: []string{"ejemplo: x."}},
		},
	}
	if got := Quality(sc); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected 1.0, got %f", got)
	}
}
