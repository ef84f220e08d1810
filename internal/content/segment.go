package content

import "strings"

// FallbackSectionTitle names the single section synthesized when no header
// line is found.
const FallbackSectionTitle = "Main Content"

// Segment splits text into ordered, enriched sections using IsHeaderLine.
// Lines before the first header belong to no section. The result always has
// at least one section.
func Segment(text string, includeExamples bool) []Section {
	var (
		sections []Section
		current  *Section
		buf      strings.Builder
	)

	flush := func() {
		if current == nil {
			return
		}
		body := buf.String()
		enrich(current, body, includeExamples)
		current.Content = strings.TrimSpace(body)
		sections = append(sections, *current)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if IsHeaderLine(line) {
			flush()
			current = &Section{Title: CleanTitle(line)}
			buf.Reset()
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	flush()

	if len(sections) == 0 {
		s := Section{Title: FallbackSectionTitle, Content: text}
		enrich(&s, text, includeExamples)
		sections = append(sections, s)
	}
	return sections
}
