// Package screening turns raw candidate documents into a ranked report by
// way of the remote ranking tool.
package screening

import (
	"github.com/talentsift/talentsift/internal/helpers"
)

// CandidateRecord is the canonical form of one ranked candidate. Records are
// created fresh per ranking run and never mutated afterwards, only re-sorted.
type CandidateRecord struct {
	Name      string   `json:"name"`
	Score     float64  `json:"score"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
	Rank      int      `json:"rank"`
}

// newCandidateRecord normalizes one entry of the ranking tool's response.
// The display name is derived deterministically from the source filename.
func newCandidateRecord(entry map[string]any) CandidateRecord {
	filename := stringField(entry, "resumeFilename", "Unknown")
	return CandidateRecord{
		Name:      helpers.TitleCaseName(filename),
		Score:     floatField(entry, "score"),
		Strengths: stringSliceField(entry, "strengths"),
		Gaps:      stringSliceField(entry, "improvements"),
		Rank:      int(floatField(entry, "rank")),
	}
}

func stringField(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}

func floatField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func stringSliceField(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
