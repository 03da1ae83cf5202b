package screening

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"text/template"
	"time"
)

// Report is the deterministic summary document for one screening run.
// Written once, immutable thereafter.
type Report struct {
	RunID        string            `json:"run_id"`
	Position     string            `json:"position"`
	GeneratedAt  time.Time         `json:"generated_at"`
	Candidates   []CandidateRecord `json:"candidates"`
	AverageScore float64           `json:"average_score"`
	Top          CandidateRecord   `json:"top"`
}

// BuildReport sorts the records by score descending, ties preserving the
// order the ranking tool returned them in, and computes the summary line.
func BuildReport(runID, position string, records []CandidateRecord, now time.Time) (Report, error) {
	if len(records) == 0 {
		return Report{}, ErrNoCandidates
	}
	sorted := make([]CandidateRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	var sum float64
	for _, r := range sorted {
		sum += r.Score
	}
	avg := math.Round(sum/float64(len(sorted))*10) / 10

	return Report{
		RunID:        runID,
		Position:     position,
		GeneratedAt:  now,
		Candidates:   sorted,
		AverageScore: avg,
		Top:          sorted[0],
	}, nil
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"score": func(v float64) string {
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
	},
}).Parse(`# Recruitment Analysis Report

**Position:** {{.Position}}

**Date:** {{.GeneratedAt.Format "2006-01-02 15:04"}}

**Total Candidates Analyzed:** {{len .Candidates}}

---

{{range $i, $c := .Candidates}}## Rank {{inc $i}}: {{$c.Name}}

**Match Score:** {{score $c.Score}}%

{{if $c.Strengths}}**Strengths:**
{{range $c.Strengths}}- {{.}}
{{end}}
{{end}}{{if $c.Gaps}}**Areas for Improvement:**
{{range $c.Gaps}}- {{.}}
{{end}}
{{end}}---

{{end}}## Summary

- **Average Match Score:** {{printf "%.1f" .AverageScore}}%
- **Top Candidate:** {{.Top.Name}} ({{score .Top.Score}}%)
`))

// Render produces the markdown document for the report.
func (r Report) Render() (string, error) {
	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, r); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return sb.String(), nil
}
