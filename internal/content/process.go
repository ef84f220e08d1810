package content

import (
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// Fixed parts of the document built when processing panics. panicSectionTitle
// is distinct from FallbackSectionTitle, which Segment uses for text
// without headings.
const (
	panicMainTopic    = "Generated content"
	panicSectionTitle = "Response"
	panicSummaryRunes = 200
)

// Processor turns raw model output into StructuredContent.
type Processor struct {
	log *slog.Logger

	// segment is swappable so tests can force the fallback path.
	segment func(text string, includeExamples bool) []Section
}

// NewProcessor returns a Processor. log may be nil.
func NewProcessor(log *slog.Logger) *Processor {
	return &Processor{log: log, segment: Segment}
}

// Process structures rawText. It never fails: any panic in a sub-step yields
// the minimal document built by Fallback.
func (p *Processor) Process(rawText string, includeExamples bool) (sc StructuredContent) {
	defer func() {
		if r := recover(); r != nil {
			if p.log != nil {
				p.log.Error("content processing failed, using fallback", "error", fmt.Sprint(r))
			}
			sc = Fallback(rawText)
		}
	}()

	segment := p.segment
	if segment == nil {
		segment = Segment
	}
	return StructuredContent{
		Summary:           Summary(rawText),
		MainTopic:         MainTopic(rawText),
		Sections:          segment(rawText, includeExamples),
		KeyTakeaways:      KeyTakeaways(rawText),
		RelatedTopics:     RelatedTopics(rawText),
		Difficulty:        EstimateDifficulty(rawText),
		EstimatedReadTime: ReadTime(rawText),
	}
}

// Fallback is the minimal valid document for rawText: a truncated summary,
// a fixed topic and one section holding the text verbatim.
func Fallback(rawText string) StructuredContent {
	summary := rawText
	if utf8.RuneCountInString(summary) > panicSummaryRunes {
		summary = string([]rune(summary)[:panicSummaryRunes])
	}
	return StructuredContent{
		Summary:   summary + "...",
		MainTopic: panicMainTopic,
		Sections: []Section{{
			Title:        panicSectionTitle,
			Content:      rawText,
			KeyPoints:    []string{},
			CodeSnippets: []CodeSnippet{},
		}},
		KeyTakeaways: []string{},
	}
}
