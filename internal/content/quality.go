package content

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	headingLineRe  = regexp.MustCompile(`(?m)^#+\s`)
	numberedLineRe = regexp.MustCompile(`(?m)^\d+\.`)
)

// Confidence is a rough 0..1 score of how well-formed a raw response looks.
func Confidence(raw string) float64 {
	score := 0.5
	n := utf8.RuneCountInString(raw)
	if n < 100 {
		score -= 0.2
	}
	if n > 500 {
		score += 0.2
	}
	if strings.Contains(raw, "\n\n") {
		score += 0.1
	}
	if headingLineRe.MatchString(raw) {
		score += 0.1
	}
	if numberedLineRe.MatchString(raw) {
		score += 0.1
	}
	if strings.Contains(raw, "ejemplo") || strings.Contains(raw, "example") {
		score += 0.1
	}
	if strings.Contains(raw, "```") {
		score += 0.1
	}
	return clamp01(score)
}

// Quality is a rough 0..1 score of how rich a structured document is.
func Quality(sc StructuredContent) float64 {
	score := 0.5
	if len(sc.Sections) > 1 {
		score += 0.2
	}
	if len(sc.KeyTakeaways) > 0 {
		score += 0.1
	}
	if utf8.RuneCountInString(sc.Summary) > 50 {
		score += 0.1
	}

	var subsections, examples, code bool
	for _, s := range sc.Sections {
		subsections = subsections || len(s.Subsections) > 0
		examples = examples || len(s.Examples) > 0
		code = code || len(s.CodeSnippets) > 0
	}
	if subsections {
		score += 0.1
	}
	if examples {
		score += 0.1
	}
	if code {
		score += 0.1
	}
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
