package agent

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/talentsift/talentsift/config"
	"github.com/talentsift/talentsift/internal/helpers"
	"github.com/talentsift/talentsift/internal/history"
	"github.com/talentsift/talentsift/internal/jobdesc"
	"github.com/talentsift/talentsift/internal/mcpclient"
	"github.com/talentsift/talentsift/internal/screening"
)

// Screener implements Capabilities against a single MCP endpoint. The tool
// catalog is shared across operations and cached for the process lifetime;
// sessions are not. Every operation that reaches the server dials its own
// session and tears it down when the operation returns, so concurrent
// operations never share a message-id counter.
type Screener struct {
	endpoint mcpclient.Endpoint
	invoker  *mcpclient.Invoker
	fetcher  *jobdesc.Fetcher
	ranker   *screening.Ranker
	sink     *screening.Sink

	resumesDir string
	history    *history.Store
	logger     *log.Logger
}

// NewScreener wires a Screener from configuration. The history store is
// optional; pass nil to skip run recording. The observer, when non-nil,
// receives one observation per remote tool call.
func NewScreener(cfg *config.Config, hist *history.Store, observer mcpclient.CallObserver, logger *log.Logger) *Screener {
	if logger == nil {
		logger = log.New(os.Stdout, "[SCREENER] ", log.LstdFlags)
	}
	catalog := mcpclient.NewCatalog()
	invoker := mcpclient.NewInvoker(catalog, logger, observer)
	return &Screener{
		endpoint:   cfg.MCP,
		invoker:    invoker,
		fetcher:    jobdesc.NewFetcher(cfg.Screening.JobDescriptionsDir, invoker, logger),
		ranker:     screening.NewRanker(invoker, logger),
		sink:       screening.NewSink(cfg.Screening.ResultsDir),
		resumesDir: cfg.Screening.ResumesDir,
		history:    hist,
		logger:     logger,
	}
}

func (s *Screener) dial(ctx context.Context) (*mcpclient.Session, error) {
	return mcpclient.Dial(ctx, s.endpoint, s.logger)
}

func (s *Screener) FetchDescription(ctx context.Context, ref string) (string, error) {
	if !jobdesc.IsURL(ref) {
		return s.fetcher.Fetch(ctx, nil, ref)
	}
	sess, err := s.dial(ctx)
	if err != nil {
		return "", err
	}
	defer sess.Close()
	return s.fetcher.Fetch(ctx, sess, ref)
}

func (s *Screener) RankCandidates(ctx context.Context, jobDescription string) ([]screening.CandidateRecord, error) {
	documents, err := screening.LoadDocuments(s.resumesDir, s.logger)
	if err != nil {
		return nil, err
	}
	sess, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()
	return s.ranker.Rank(ctx, sess, jobDescription, documents)
}

func (s *Screener) BuildReport(ctx context.Context, jobDescription string, records []screening.CandidateRecord) (ReportOutcome, error) {
	position := helpers.ExtractJobTitle(jobDescription)
	report, err := screening.BuildReport(uuid.NewString(), position, records, time.Now())
	if err != nil {
		return ReportOutcome{}, err
	}
	path, err := s.sink.Write(report)
	if err != nil {
		return ReportOutcome{}, err
	}
	s.logger.Printf("report written to %s", path)
	s.recordRun(ctx, report, path)
	return ReportOutcome{Report: report, Path: path}, nil
}

// recordRun saves the run summary when history is configured. A history
// failure never fails the run that produced the report.
func (s *Screener) recordRun(ctx context.Context, report screening.Report, path string) {
	if s.history == nil {
		return
	}
	rec := history.Record{
		ID:           report.RunID,
		Position:     report.Position,
		Candidates:   len(report.Candidates),
		AverageScore: report.AverageScore,
		TopCandidate: report.Top.Name,
		TopScore:     report.Top.Score,
		ReportPath:   path,
		CreatedAt:    report.GeneratedAt,
	}
	if err := s.history.Save(ctx, rec); err != nil {
		s.logger.Printf("recording run history failed (continuing): %v", err)
	}
}

// Tools dials a session and returns the server's tool catalog, cached after
// the first discovery.
func (s *Screener) Tools(ctx context.Context) ([]mcpclient.ToolDescriptor, error) {
	sess, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()
	return s.invoker.Tools(ctx, sess)
}
