package agent

import (
	"context"
	"log"
	"os"
)

// RunObserver is notified of each completed screening run, for metrics.
type RunObserver interface {
	ObserveRun(err error)
}

// Runner is the scripted orchestration strategy: fetch the description,
// rank the candidates, build the report. Anything else implementing the
// same flow over Capabilities can replace it.
type Runner struct {
	caps     Capabilities
	observer RunObserver
	logger   *log.Logger
}

func NewRunner(caps Capabilities, observer RunObserver, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(os.Stdout, "[RUN] ", log.LstdFlags)
	}
	return &Runner{caps: caps, observer: observer, logger: logger}
}

// Run screens the resume folder against the referenced job description and
// returns the persisted report.
func (r *Runner) Run(ctx context.Context, ref string) (outcome ReportOutcome, err error) {
	if r.observer != nil {
		defer func() { r.observer.ObserveRun(err) }()
	}

	description, err := r.caps.FetchDescription(ctx, ref)
	if err != nil {
		return ReportOutcome{}, err
	}
	records, err := r.caps.RankCandidates(ctx, description)
	if err != nil {
		return ReportOutcome{}, err
	}
	return r.caps.BuildReport(ctx, description, records)
}
