package extract

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Article is a related article cited by a RAG answer.
type Article struct {
	Title   Text       `json:"title"`
	Year    Year       `json:"year"`
	Authors StringList `json:"authors"`
	Tags    StringList `json:"tags"`
}

// Year accepts a JSON number or a numeric string. Anything else decodes
// to zero.
type Year int

func (y *Year) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		if f, ferr := strconv.ParseFloat(string(b), 64); ferr == nil {
			n = int(f)
		}
	}
	*y = Year(n)
	return nil
}

// Text accepts any JSON value. Strings decode as themselves, other
// scalars keep their literal text and objects or arrays their compact JSON.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err != nil {
			return err
		}
		*t = Text(buf.String())
	}
	return nil
}

// Number accepts a JSON number or a numeric string. Anything else decodes
// to zero.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	var t Text
	if err := t.UnmarshalJSON(b); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
	if err != nil {
		f = 0
	}
	*n = Number(f)
	return nil
}

// StringList accepts an array of scalars or a single scalar, which
// becomes a one-element list.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var items []Text
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		out := make(StringList, 0, len(items))
		for _, it := range items {
			out = append(out, string(it))
		}
		*l = out
		return nil
	}
	var t Text
	if err := t.UnmarshalJSON(b); err != nil {
		return err
	}
	if t == "" {
		*l = nil
		return nil
	}
	*l = StringList{string(t)}
	return nil
}

// GraphNode is a vertex of the relationship graph.
type GraphNode struct {
	ID      Text       `json:"id"`
	Name    Text       `json:"name"`
	Group   Text       `json:"group"`
	Title   Text       `json:"title,omitempty"`
	Year    Year       `json:"year,omitempty"`
	Authors StringList `json:"authors,omitempty"`
	Summary Text       `json:"summary,omitempty"`
	DOI     Text       `json:"doi,omitempty"`
	Type    Text       `json:"type,omitempty"` // "article" or "gap"
}

// GraphLink connects two node ids.
type GraphLink struct {
	Source Text   `json:"source"`
	Target Text   `json:"target"`
	Value  Number `json:"value"`
}

// Graph is the node/link relationship graph consumed by the graph UI.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// ResearchGap is an underexplored area named by the model.
type ResearchGap struct {
	Topic       Text `json:"topic"`
	Description Text `json:"description"`
}

// RagRecord is the structured RAG answer. A record accepted by Normalize
// marshals as the recovered JSON, including keys the typed fields do not
// model.
type RagRecord struct {
	Answer            string        `json:"answer"`
	RelatedArticles   []Article     `json:"related_articles"`
	RelationshipGraph Graph         `json:"relationship_graph"`
	ResearchGaps      []ResearchGap `json:"research_gaps,omitempty"`

	raw json.RawMessage
}

// Raw returns the recovered JSON of an accepted record, or nil for a
// fallback record.
func (r RagRecord) Raw() json.RawMessage { return r.raw }

func (r RagRecord) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	type plain RagRecord
	return json.Marshal(plain(r))
}

// DanglingLinks returns the links whose source or target is not a node id.
func DanglingLinks(g Graph) []GraphLink {
	ids := make(map[Text]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}
	var dangling []GraphLink
	for _, l := range g.Links {
		if !ids[l.Source] || !ids[l.Target] {
			dangling = append(dangling, l)
		}
	}
	return dangling
}
