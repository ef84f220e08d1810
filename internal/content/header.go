package content

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	markdownHeadingRe = regexp.MustCompile(`^#{1,6}\s+`)
	numberedHeadingRe = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	colonTitleRe      = regexp.MustCompile(`^[A-Z][^.!?]*:$`)
	boldTitleRe       = regexp.MustCompile(`^\*\*[^*]+\*\*$`)

	titleHashRe   = regexp.MustCompile(`^#+\s*`)
	titleNumberRe = regexp.MustCompile(`^\d+\.\s*`)
)

// IsHeaderLine reports whether line looks like a section title.
//
// The last rule (short line starting with an uppercase letter) is a
// deliberate catch-all; it accepts false positives so that a titled
// document is never left unsegmented.
func IsHeaderLine(line string) bool {
	line = strings.TrimSpace(line)
	if markdownHeadingRe.MatchString(line) ||
		numberedHeadingRe.MatchString(line) ||
		colonTitleRe.MatchString(line) ||
		boldTitleRe.MatchString(line) {
		return true
	}
	n := utf8.RuneCountInString(line)
	return n > 5 && n < 60 && startsUpper(line)
}

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

// CleanTitle strips heading markers, bold markers, numbering and a trailing
// colon from a header line.
func CleanTitle(line string) string {
	t := strings.TrimSpace(line)
	t = titleHashRe.ReplaceAllString(t, "")
	t = titleNumberRe.ReplaceAllString(t, "")
	t = strings.TrimPrefix(t, "**")
	t = strings.TrimSuffix(t, "**")
	t = strings.TrimSuffix(t, ":")
	return strings.TrimSpace(t)
}
