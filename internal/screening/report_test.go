package screening

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBuildReportStableSort(t *testing.T) {
	t.Parallel()

	records := []CandidateRecord{
		{Name: "Seventy", Score: 70},
		{Name: "Ninety First", Score: 90},
		{Name: "Ninety Second", Score: 90},
		{Name: "Forty", Score: 40},
	}
	report, err := BuildReport("run-1", "Software Engineer", records, time.Now())
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	want := []string{"Ninety First", "Ninety Second", "Seventy", "Forty"}
	for i, name := range want {
		if report.Candidates[i].Name != name {
			t.Fatalf("position %d = %q, want %q (ties must preserve ranking order)", i, report.Candidates[i].Name, name)
		}
	}
	if report.Top.Name != "Ninety First" {
		t.Fatalf("top candidate = %q, want Ninety First", report.Top.Name)
	}
}

func TestBuildReportAverage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{name: "exact", scores: []float64{80, 90}, want: 85},
		{name: "rounded to one decimal", scores: []float64{70, 90, 90, 40}, want: 72.5},
		{name: "repeating decimal", scores: []float64{70, 80, 90, 100}, want: 85},
		{name: "thirds", scores: []float64{50, 60, 71}, want: 60.3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			records := make([]CandidateRecord, len(tt.scores))
			for i, s := range tt.scores {
				records[i] = CandidateRecord{Name: "X", Score: s}
			}
			report, err := BuildReport("run-1", "P", records, time.Now())
			if err != nil {
				t.Fatalf("BuildReport() error = %v", err)
			}
			if report.AverageScore != tt.want {
				t.Fatalf("average = %v, want %v", report.AverageScore, tt.want)
			}
		})
	}
}

func TestBuildReportNoRecords(t *testing.T) {
	t.Parallel()

	if _, err := BuildReport("run-1", "P", nil, time.Now()); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("BuildReport() error = %v, want ErrNoCandidates", err)
	}
}

func TestBuildReportDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	records := []CandidateRecord{{Name: "Low", Score: 10}, {Name: "High", Score: 99}}
	if _, err := BuildReport("run-1", "P", records, time.Now()); err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	if records[0].Name != "Low" || records[1].Name != "High" {
		t.Fatal("BuildReport must sort a copy, not the caller's slice")
	}
}

func TestReportRender(t *testing.T) {
	t.Parallel()

	report, err := BuildReport("run-1", "Software Engineer", []CandidateRecord{
		{Name: "Alice Johnson", Score: 92.5, Strengths: []string{"Python", "ML"}, Gaps: []string{"Kubernetes"}, Rank: 1},
		{Name: "Bob Smith", Score: 61, Strengths: []string{"JavaScript"}, Rank: 2},
	}, time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	body, err := report.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		"# Recruitment Analysis Report",
		"**Position:** Software Engineer",
		"**Total Candidates Analyzed:** 2",
		"## Rank 1: Alice Johnson",
		"**Match Score:** 92.5%",
		"- Python",
		"- Kubernetes",
		"## Rank 2: Bob Smith",
		"**Match Score:** 61%",
		"## Summary",
		"**Average Match Score:** 76.8%",
		"**Top Candidate:** Alice Johnson (92.5%)",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("rendered report missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "Areas for Improvement:\n\n") {
		t.Fatal("empty gaps section should be omitted")
	}

	// Deterministic output for identical input.
	again, err := report.Render()
	if err != nil {
		t.Fatalf("Render() second call error = %v", err)
	}
	if body != again {
		t.Fatal("Render() is not deterministic")
	}
}
