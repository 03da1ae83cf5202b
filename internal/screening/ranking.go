package screening

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/talentsift/talentsift/internal/mcpclient"
)

// Remote tool names this pipeline depends on.
const (
	RankTool  = "rank_resumes_mcp"
	FetchTool = "fetch_job_description_mcp"
)

// Ranker invokes the remote ranking tool and normalizes its output.
type Ranker struct {
	invoker *mcpclient.Invoker
	logger  *log.Logger
}

func NewRanker(invoker *mcpclient.Invoker, logger *log.Logger) *Ranker {
	if logger == nil {
		logger = log.New(os.Stdout, "[RANK] ", log.LstdFlags)
	}
	return &Ranker{invoker: invoker, logger: logger}
}

// Rank submits the job description and every candidate document in a single
// batched call, so the remote side can score candidates relative to one
// another, and returns the normalized records in the tool's order.
func (r *Ranker) Rank(ctx context.Context, s *mcpclient.Session, jobDescription string, documents []Document) ([]CandidateRecord, error) {
	if len(documents) == 0 {
		return nil, ErrNoCandidates
	}

	texts := make([]string, len(documents))
	filenames := make([]string, len(documents))
	for i, d := range documents {
		texts[i] = d.Text
		filenames[i] = d.Filename
	}

	r.logger.Printf("ranking %d candidate(s)", len(documents))
	result, err := r.invoker.Invoke(ctx, s, RankTool, map[string]any{
		"job_description":  jobDescription,
		"resume_texts":     texts,
		"resume_filenames": filenames,
	})
	if err != nil {
		return nil, err
	}

	rankings, ok := result["rankings"].([]any)
	if !ok {
		return nil, fmt.Errorf("ranking result carries no rankings list")
	}
	records := make([]CandidateRecord, 0, len(rankings))
	for _, raw := range rankings {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, newCandidateRecord(entry))
	}
	r.logger.Printf("ranked %d candidate(s)", len(records))
	return records, nil
}
