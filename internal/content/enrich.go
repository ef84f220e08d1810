package content

import (
	"regexp"
	"strings"
)

var (
	keyPointRe   = regexp.MustCompile(`^(?:[-*+]|\d+\.?)\s+(.+)$`)
	fencedCodeRe = regexp.MustCompile("(?s)```(\\w+)?[ \\t]*\\r?\\n(.*?)```")
	inlineCodeRe = regexp.MustCompile("`([^`\\n]+)`")

	examplePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ejemplo[:\s]+[^.!?]+[.!?]`),
		regexp.MustCompile(`(?i)por ejemplo[:\s]+[^.!?]+[.!?]`),
		regexp.MustCompile(`(?i)\bcomo[:\s]+[^.!?]+[.!?]`),
		regexp.MustCompile(`(?i)\bexample[:\s]+[^.!?]+[.!?]`),
		regexp.MustCompile(`(?i)\bfor example[:\s]+[^.!?]+[.!?]`),
		regexp.MustCompile(`(?i)\bsuch as[:\s]+[^.!?]+[.!?]`),
	}
)

const (
	fencedDescription = "Code example"
	inlineDescription = "Inline code"
)

// enrich fills the derived fields of s from its raw content buffer.
func enrich(s *Section, body string, includeExamples bool) {
	s.KeyPoints = KeyPoints(body)
	s.CodeSnippets = CodeSnippets(body)
	if includeExamples {
		s.Examples = Examples(body)
	}
}

// KeyPoints returns up to five bulleted or numbered lines with the list
// marker removed.
func KeyPoints(body string) []string {
	points := []string{}
	for _, line := range strings.Split(body, "\n") {
		m := keyPointRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		points = append(points, strings.TrimSpace(m[1]))
		if len(points) == maxKeyPoints {
			break
		}
	}
	return points
}

// CodeSnippets returns the fenced code blocks of body. When there are none,
// up to three inline code spans are returned instead.
func CodeSnippets(body string) []CodeSnippet {
	snippets := []CodeSnippet{}
	for _, m := range fencedCodeRe.FindAllStringSubmatch(body, -1) {
		lang := m[1]
		if lang == "" {
			lang = "text"
		}
		snippets = append(snippets, CodeSnippet{
			Language:    lang,
			Code:        strings.TrimSpace(m[2]),
			Description: fencedDescription,
		})
	}
	if len(snippets) > 0 {
		return snippets
	}
	for _, m := range inlineCodeRe.FindAllStringSubmatch(body, maxInlineCode) {
		snippets = append(snippets, CodeSnippet{
			Language:    "text",
			Code:        m[1],
			Description: inlineDescription,
		})
	}
	return snippets
}

// Examples returns up to three sentences introduced by an example trigger
// phrase, trigger included.
func Examples(body string) []string {
	examples := []string{}
	for _, re := range examplePatterns {
		for _, m := range re.FindAllString(body, -1) {
			examples = append(examples, strings.TrimSpace(m))
			if len(examples) == maxExamples {
				return examples
			}
		}
	}
	return examples
}
