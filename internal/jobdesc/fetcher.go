// Package jobdesc resolves a job-description reference, either a filename
// under the job-descriptions folder or an http(s) URL fetched through the
// remote fetch tool.
package jobdesc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/talentsift/talentsift/internal/docs"
	"github.com/talentsift/talentsift/internal/helpers"
	"github.com/talentsift/talentsift/internal/mcpclient"
	"github.com/talentsift/talentsift/internal/screening"
)

const fallbackFetchTimeout = 30 * time.Second

// Fetcher resolves job-description references. Remote fetches go through
// the MCP fetch tool; when the server does not expose one, the fetcher falls
// back to a local readability extraction.
type Fetcher struct {
	Dir     string
	invoker *mcpclient.Invoker
	logger  *log.Logger
}

func NewFetcher(dir string, invoker *mcpclient.Invoker, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.New(os.Stdout, "[JOBDESC] ", log.LstdFlags)
	}
	return &Fetcher{Dir: dir, invoker: invoker, logger: logger}
}

// IsURL reports whether the reference is a remote job description.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Fetch returns the plain-text job description for the reference. The
// session is only used for URL references; file references never touch the
// transport.
func (f *Fetcher) Fetch(ctx context.Context, s *mcpclient.Session, ref string) (string, error) {
	if IsURL(ref) {
		return f.fetchURL(ctx, s, ref)
	}
	safe := helpers.SanitizeFilename(ref)
	path := filepath.Join(f.Dir, safe)
	f.logger.Printf("reading job description from %s", path)
	text, err := docs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("job description: %w", err)
	}
	return text, nil
}

func (f *Fetcher) fetchURL(ctx context.Context, s *mcpclient.Session, url string) (string, error) {
	f.logger.Printf("fetching job description from %s", url)
	result, err := f.invoker.Invoke(ctx, s, screening.FetchTool, map[string]any{"url": url})
	if err != nil {
		var notFound *mcpclient.ToolNotFoundError
		if errors.As(err, &notFound) {
			f.logger.Printf("server has no %s tool, fetching locally", screening.FetchTool)
			return f.fetchLocal(url)
		}
		return "", err
	}
	content, _ := result["content"].(string)
	if content == "" {
		return "", fmt.Errorf("job description at %s came back empty", url)
	}
	return helpers.StripHTML(content), nil
}

func (f *Fetcher) fetchLocal(url string) (string, error) {
	article, err := readability.FromURL(url, fallbackFetchTimeout)
	if err != nil {
		return "", fmt.Errorf("local fetch of %s: %w", url, err)
	}
	return strings.TrimSpace(article.TextContent), nil
}
