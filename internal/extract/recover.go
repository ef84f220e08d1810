package extract

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNotFound is returned by Recover when no strategy yields valid JSON.
var ErrNotFound = errors.New("no valid JSON found in response")

// Strategy identifies how a JSON value was located.
type Strategy string

const (
	StrategyDirect Strategy = "direct"
	StrategyFenced Strategy = "fenced"
	StrategyBraces Strategy = "braces"
)

var (
	jsonFenceRe  = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// Result is a JSON value that passed a full parse. The zero Result is not
// Found.
type Result struct {
	raw      json.RawMessage
	strategy Strategy
}

// Found reports whether r holds a parsed value.
func (r Result) Found() bool { return r.raw != nil }

// Raw returns the recovered JSON text.
func (r Result) Raw() json.RawMessage { return r.raw }

// Strategy returns the strategy that located the value.
func (r Result) Strategy() Strategy { return r.strategy }

// Decode unmarshals the recovered value into v.
func (r Result) Decode(v any) error {
	if !r.Found() {
		return ErrNotFound
	}
	return json.Unmarshal(r.raw, v)
}

// Recover locates one JSON value in text. Strategies run in order and the
// first one that parses wins:
//
//  1. the whole trimmed text, when it starts with '{' and ends with '}'
//  2. the first ```json fenced block
//  3. the span from the first '{' to the last '}'
//
// It returns ErrNotFound when every strategy fails.
func Recover(text string) (Result, error) {
	clean := strings.TrimSpace(text)

	if strings.HasPrefix(clean, "{") && strings.HasSuffix(clean, "}") {
		if r, ok := parse(clean, StrategyDirect); ok {
			return r, nil
		}
	}
	if m := jsonFenceRe.FindStringSubmatch(clean); m != nil {
		if r, ok := parse(strings.TrimSpace(m[1]), StrategyFenced); ok {
			return r, nil
		}
	}
	if m := jsonObjectRe.FindString(clean); m != "" {
		if r, ok := parse(m, StrategyBraces); ok {
			return r, nil
		}
	}
	return Result{}, ErrNotFound
}

func parse(candidate string, s Strategy) (Result, bool) {
	if !json.Valid([]byte(candidate)) {
		return Result{}, false
	}
	return Result{raw: json.RawMessage(candidate), strategy: s}, true
}
