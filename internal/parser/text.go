package parser

import (
	"bufio"
	"io"
	"strings"
)

// TextParser handles plain text files. Lines are kept as written,
// with runs of blank lines collapsed.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var w blockWriter
	var current strings.Builder
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			w.block(current.String())
			current.Reset()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	w.block(current.String())

	return &Document{Title: baseTitle(filename), Text: w.String()}, nil
}
