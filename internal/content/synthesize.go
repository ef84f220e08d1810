package content

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MainTopicPlaceholder is used when no line or first sentence can serve as
// the main topic.
const MainTopicPlaceholder = "Main topic"

const wordsPerMinute = 200

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	topicMarkerRe   = regexp.MustCompile(`^[#*\-\s]+`)
	bulletLineRe    = regexp.MustCompile(`(?m)^[-*+][ \t]+(.+?)\r?$`)

	importanceWords = []string{
		"importante", "clave", "esencial", "fundamental", "recordar",
		"important", "key", "essential", "remember",
	}

	relatedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\brelacionado con\s+([^.!?]+)`),
		regexp.MustCompile(`(?i)\btambién\s+([^.!?]+)`),
		regexp.MustCompile(`(?i)\bsimilar a\s+([^.!?]+)`),
		regexp.MustCompile(`(?i)\brelated to\s+([^.!?]+)`),
		regexp.MustCompile(`(?i)\balso\s+([^.!?]+)`),
		regexp.MustCompile(`(?i)\bsimilar to\s+([^.!?]+)`),
	}

	longWordRe      = regexp.MustCompile(`\b\w{10,}\b`)
	technicalTermRe = regexp.MustCompile(`(?i)\b(algoritmo|implementación|arquitectura|optimización|refactoring|debugging|algorithm|implementation|architecture|optimization)\b`)
	codeBlockRe     = regexp.MustCompile("(?s)```.*?```")
)

// MainTopic picks the first of the first three non-blank lines whose length
// is strictly between 10 and 100 runes, stripped of heading and bullet
// markers. Otherwise it falls back to the first sentence, or to
// MainTopicPlaceholder when that sentence is too long or empty.
func MainTopic(text string) string {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if n := utf8.RuneCountInString(line); n > 10 && n < 100 {
			return strings.TrimSpace(topicMarkerRe.ReplaceAllString(line, ""))
		}
		seen++
		if seen == 3 {
			break
		}
	}

	first, _, _ := strings.Cut(text, ".")
	first = strings.TrimSpace(first)
	if first == "" || utf8.RuneCountInString(first) > 100 {
		return MainTopicPlaceholder
	}
	return first
}

// Summary joins the first three sentences of at least 11 runes.
func Summary(text string) string {
	var picked []string
	for _, s := range splitSentences(text) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) <= 10 {
			continue
		}
		picked = append(picked, s)
		if len(picked) == 3 {
			break
		}
	}
	return strings.Join(picked, ". ") + "."
}

// KeyTakeaways collects bulleted lines followed by sentences that mention an
// importance word, capped at five.
func KeyTakeaways(text string) []string {
	takeaways := []string{}
	for _, m := range bulletLineRe.FindAllStringSubmatch(text, -1) {
		takeaways = append(takeaways, strings.TrimSpace(m[1]))
	}
	for _, s := range splitSentences(text) {
		if n := utf8.RuneCountInString(s); n <= 20 || n >= 150 {
			continue
		}
		if containsAny(strings.ToLower(s), importanceWords) {
			takeaways = append(takeaways, strings.TrimSpace(s))
		}
	}
	if len(takeaways) > maxTakeaways {
		takeaways = takeaways[:maxTakeaways]
	}
	return takeaways
}

// RelatedTopics returns up to five distinct phrases, each at most 50 runes,
// that follow a "related to" style trigger.
func RelatedTopics(text string) []string {
	topics := []string{}
	seen := make(map[string]bool)
	for _, re := range relatedPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			t := truncateRunes(strings.TrimSpace(m[1]), 50)
			if seen[t] {
				continue
			}
			seen[t] = true
			topics = append(topics, t)
			if len(topics) == maxRelatedTopics {
				return topics
			}
		}
	}
	return topics
}

// DifficultyScore weighs long words, technical terms and fenced code blocks.
func DifficultyScore(text string) int {
	long := len(longWordRe.FindAllString(text, -1))
	terms := len(technicalTermRe.FindAllString(text, -1))
	blocks := len(codeBlockRe.FindAllString(text, -1))
	return long + 2*terms + 3*blocks
}

// EstimateDifficulty maps DifficultyScore onto a tier.
func EstimateDifficulty(text string) Difficulty {
	return difficultyFor(DifficultyScore(text))
}

func difficultyFor(score int) Difficulty {
	switch {
	case score > 15:
		return Advanced
	case score > 7:
		return Intermediate
	default:
		return Beginner
	}
}

// ReadTime estimates reading time at 200 words per minute, rounded up.
// Text counts as at least one word.
func ReadTime(text string) string {
	words := max(len(strings.Fields(text)), 1)
	return FormatMinutes((words + wordsPerMinute - 1) / wordsPerMinute)
}

// FormatMinutes renders a duration in minutes the way the UI displays it.
func FormatMinutes(minutes int) string {
	if minutes == 1 {
		return "1 minuto"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d minutos", minutes)
	}
	hours, rem := minutes/60, minutes%60
	switch {
	case hours == 1 && rem == 0:
		return "1 hora"
	case rem == 0:
		return fmt.Sprintf("%d horas", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rem)
}

func splitSentences(text string) []string {
	return sentenceSplitRe.Split(text, -1)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
