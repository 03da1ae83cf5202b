package screening

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/talentsift/talentsift/internal/mcpclient"
)

// rankServer fakes an MCP server that advertises the ranking tool and
// records every tools/call it receives.
type rankServer struct {
	calls    []json.RawMessage
	rankings []map[string]any
}

func (f *rankServer) RoundTrip(_ context.Context, req *mcpclient.Request) (*mcpclient.Response, error) {
	var result any
	switch req.Method {
	case "tools/list":
		result = map[string]any{"tools": []map[string]any{{"name": RankTool, "description": "rank resumes"}}}
	case "tools/call":
		f.calls = append(f.calls, req.Params)
		payload, _ := json.Marshal(map[string]any{"rankings": f.rankings})
		result = map[string]any{"content": []map[string]any{{"type": "text", "text": string(payload)}}}
	default:
		result = map[string]any{}
	}
	raw, _ := json.Marshal(result)
	return &mcpclient.Response{JSONRPC: mcpclient.Version, ID: req.ID, Result: raw}, nil
}

func (f *rankServer) Notify(context.Context, *mcpclient.Request) error { return nil }
func (f *rankServer) Close() error                                     { return nil }

func TestRankIsOneBatchedCall(t *testing.T) {
	t.Parallel()

	server := &rankServer{rankings: []map[string]any{
		{"resumeFilename": "alice_johnson.pdf", "score": 92.0, "strengths": []string{"Python"}, "improvements": []string{"K8s"}, "rank": 1},
		{"resumeFilename": "bob_smith.pdf", "score": 61.0, "strengths": []string{"JS"}, "improvements": []string{"Python"}, "rank": 2},
		{"resumeFilename": "carol_wu.pdf", "score": 55.0, "rank": 3},
	}}
	sess := mcpclient.NewSession(server, discardLogger())
	ranker := NewRanker(mcpclient.NewInvoker(mcpclient.NewCatalog(), discardLogger(), nil), discardLogger())

	documents := []Document{
		{Filename: "alice_johnson.pdf", Text: "Alice's resume"},
		{Filename: "bob_smith.pdf", Text: "Bob's resume"},
		{Filename: "carol_wu.pdf", Text: "Carol's resume"},
	}
	records, err := ranker.Rank(context.Background(), sess, "Software Engineer position", documents)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	if len(server.calls) != 1 {
		t.Fatalf("ranking issued %d tools/call round-trips, want exactly 1", len(server.calls))
	}
	var params struct {
		Name      string `json:"name"`
		Arguments struct {
			JobDescription  string   `json:"job_description"`
			ResumeTexts     []string `json:"resume_texts"`
			ResumeFilenames []string `json:"resume_filenames"`
		} `json:"arguments"`
	}
	if err := json.Unmarshal(server.calls[0], &params); err != nil {
		t.Fatalf("decode call params: %v", err)
	}
	if params.Name != RankTool {
		t.Fatalf("called %q, want %s", params.Name, RankTool)
	}
	if len(params.Arguments.ResumeTexts) != 3 || len(params.Arguments.ResumeFilenames) != 3 {
		t.Fatalf("batched call carried %d texts / %d filenames, want 3 / 3",
			len(params.Arguments.ResumeTexts), len(params.Arguments.ResumeFilenames))
	}
	if params.Arguments.JobDescription != "Software Engineer position" {
		t.Fatalf("job description = %q", params.Arguments.JobDescription)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	first := records[0]
	if first.Name != "Alice Johnson" {
		t.Fatalf("display name = %q, want Alice Johnson", first.Name)
	}
	if first.Score != 92 || first.Rank != 1 {
		t.Fatalf("record = %+v", first)
	}
	if len(first.Strengths) != 1 || first.Strengths[0] != "Python" {
		t.Fatalf("strengths = %v", first.Strengths)
	}
	if len(first.Gaps) != 1 || first.Gaps[0] != "K8s" {
		t.Fatalf("gaps = %v", first.Gaps)
	}
}

func TestRankNoDocuments(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(mcpclient.NewInvoker(mcpclient.NewCatalog(), discardLogger(), nil), discardLogger())
	sess := mcpclient.NewSession(&rankServer{}, discardLogger())
	if _, err := ranker.Rank(context.Background(), sess, "job", nil); err == nil {
		t.Fatal("Rank() with no documents should fail")
	}
}

func TestRankMalformedRankings(t *testing.T) {
	t.Parallel()

	server := &rankServer{} // rankings nil -> {"rankings": null}
	sess := mcpclient.NewSession(server, discardLogger())
	ranker := NewRanker(mcpclient.NewInvoker(mcpclient.NewCatalog(), discardLogger(), nil), discardLogger())

	_, err := ranker.Rank(context.Background(), sess, "job", []Document{{Filename: "a.txt", Text: "x"}})
	if err == nil {
		t.Fatal("Rank() should fail when the result carries no rankings list")
	}
}
