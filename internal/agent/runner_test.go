package agent

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/talentsift/talentsift/internal/screening"
)

type fakeCaps struct {
	steps    []string
	fetchErr error
	rankErr  error
	records  []screening.CandidateRecord
	outcome  ReportOutcome
}

func (f *fakeCaps) FetchDescription(_ context.Context, ref string) (string, error) {
	f.steps = append(f.steps, "fetch:"+ref)
	if f.fetchErr != nil {
		return "", f.fetchErr
	}
	return "the description", nil
}

func (f *fakeCaps) RankCandidates(_ context.Context, jobDescription string) ([]screening.CandidateRecord, error) {
	f.steps = append(f.steps, "rank:"+jobDescription)
	if f.rankErr != nil {
		return nil, f.rankErr
	}
	return f.records, nil
}

func (f *fakeCaps) BuildReport(_ context.Context, _ string, records []screening.CandidateRecord) (ReportOutcome, error) {
	f.steps = append(f.steps, "report")
	return f.outcome, nil
}

type recordingObserver struct {
	errs []error
}

func (o *recordingObserver) ObserveRun(err error) { o.errs = append(o.errs, err) }

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestRunnerSequence(t *testing.T) {
	t.Parallel()

	caps := &fakeCaps{
		records: []screening.CandidateRecord{{Name: "Alice Johnson", Score: 90}},
		outcome: ReportOutcome{Path: "results/analysis_report_X.md"},
	}
	obs := &recordingObserver{}
	runner := NewRunner(caps, obs, testLogger())

	outcome, err := runner.Run(context.Background(), "job.txt")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.Path != caps.outcome.Path {
		t.Fatalf("outcome path = %q", outcome.Path)
	}

	want := []string{"fetch:job.txt", "rank:the description", "report"}
	if len(caps.steps) != len(want) {
		t.Fatalf("steps = %v, want %v", caps.steps, want)
	}
	for i := range want {
		if caps.steps[i] != want[i] {
			t.Fatalf("steps = %v, want %v", caps.steps, want)
		}
	}
	if len(obs.errs) != 1 || obs.errs[0] != nil {
		t.Fatalf("observer saw %v, want one nil observation", obs.errs)
	}
}

func TestRunnerStopsOnFetchFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("no such description")
	caps := &fakeCaps{fetchErr: boom}
	obs := &recordingObserver{}
	runner := NewRunner(caps, obs, testLogger())

	if _, err := runner.Run(context.Background(), "missing.txt"); !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}
	if len(caps.steps) != 1 {
		t.Fatalf("steps after fetch failure = %v", caps.steps)
	}
	if len(obs.errs) != 1 || !errors.Is(obs.errs[0], boom) {
		t.Fatalf("observer saw %v", obs.errs)
	}
}

func TestRunnerStopsOnRankFailure(t *testing.T) {
	t.Parallel()

	caps := &fakeCaps{rankErr: screening.ErrNoCandidates}
	runner := NewRunner(caps, nil, testLogger())

	if _, err := runner.Run(context.Background(), "job.txt"); !errors.Is(err, screening.ErrNoCandidates) {
		t.Fatalf("Run() error = %v", err)
	}
	if len(caps.steps) != 2 {
		t.Fatalf("steps after rank failure = %v", caps.steps)
	}
}
