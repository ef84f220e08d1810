package extract

import (
	"encoding/json"
	"errors"
	"fmt"
)

var requiredKeys = []string{"answer", "related_articles", "relationship_graph"}

// Normalize validates a recovery outcome against the RagRecord shape. The
// bool is false when the fallback record was built instead. It never fails.
//
// A value carrying every required key, each non-null, is accepted as is:
// typed fields are filled on a best-effort basis and the record marshals
// as the recovered JSON. The fallback answer is raw itself when nothing
// usable was recovered, or an explanation when recovery failed with an
// error other than ErrNotFound.
func Normalize(raw string, res Result, recoverErr error) (RagRecord, bool) {
	if recoverErr != nil {
		if errors.Is(recoverErr, ErrNotFound) {
			return Fallback(raw), false
		}
		return Fallback(fmt.Sprintf("could not recover structured response: %v", recoverErr)), false
	}
	top, ok := requiredFields(res)
	if !ok {
		return Fallback(raw), false
	}

	var answer Text
	_ = json.Unmarshal(top["answer"], &answer)

	var graph struct {
		Nodes json.RawMessage `json:"nodes"`
		Links json.RawMessage `json:"links"`
	}
	_ = json.Unmarshal(top["relationship_graph"], &graph)

	rec := RagRecord{
		Answer:          string(answer),
		RelatedArticles: decodeEach[Article](top["related_articles"]),
		RelationshipGraph: Graph{
			Nodes: decodeEach[GraphNode](graph.Nodes),
			Links: decodeEach[GraphLink](graph.Links),
		},
		raw: res.Raw(),
	}
	if gaps, ok := top["research_gaps"]; ok {
		rec.ResearchGaps = decodeEach[ResearchGap](gaps)
	}
	return rec, true
}

// requiredFields splits an object into its top-level members and reports
// whether every required key is present and non-null.
func requiredFields(res Result) (map[string]json.RawMessage, bool) {
	var top map[string]json.RawMessage
	if err := res.Decode(&top); err != nil {
		return nil, false
	}
	for _, k := range requiredKeys {
		v, ok := top[k]
		if !ok || string(v) == "null" {
			return nil, false
		}
	}
	return top, true
}

// decodeEach decodes the elements of a JSON array, skipping elements that
// do not fit T. A missing or non-array value yields an empty slice.
func decodeEach[T any](raw json.RawMessage) []T {
	out := []T{}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// Fallback is the always-valid record carrying answer and empty collections.
func Fallback(answer string) RagRecord {
	return RagRecord{
		Answer:            answer,
		RelatedArticles:   []Article{},
		RelationshipGraph: Graph{Nodes: []GraphNode{}, Links: []GraphLink{}},
	}
}

// RecoverAndNormalize turns raw model output into a RagRecord. It never
// fails.
func RecoverAndNormalize(raw string) RagRecord {
	res, err := Recover(raw)
	rec, _ := Normalize(raw, res, err)
	return rec
}
