// Package agent exposes the screening system to orchestration strategies.
// The protocol core is reachable only through the three Capabilities
// operations, so a scripted driver, a rule engine, or a model-driven loop
// can be swapped in without touching the client internals.
package agent

import (
	"context"

	"github.com/talentsift/talentsift/internal/screening"
)

// ReportOutcome is the result of building and persisting a report.
type ReportOutcome struct {
	Report screening.Report
	Path   string
}

// Capabilities is the full surface an orchestration strategy may use.
type Capabilities interface {
	// FetchDescription resolves a job-description reference: a filename
	// under the job-descriptions folder or an http(s) URL.
	FetchDescription(ctx context.Context, ref string) (string, error)
	// RankCandidates screens every readable resume document against the
	// job description in one batched remote call.
	RankCandidates(ctx context.Context, jobDescription string) ([]screening.CandidateRecord, error)
	// BuildReport sorts the records, renders the summary document, and
	// persists it, returning the report and its path.
	BuildReport(ctx context.Context, jobDescription string, records []screening.CandidateRecord) (ReportOutcome, error)
}
