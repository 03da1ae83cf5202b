package screening

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/talentsift/talentsift/internal/helpers"
)

// Sink persists finished reports as markdown files in a results folder.
// Filenames derive from the position title, so re-screening the same
// position overwrites the previous report rather than appending a new one.
type Sink struct {
	Dir string
}

func NewSink(dir string) *Sink {
	return &Sink{Dir: dir}
}

// Write renders the report and persists it, returning the file path.
func (s *Sink) Write(report Report) (string, error) {
	body, err := report.Render()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating results folder: %w", err)
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("analysis_report_%s.md", helpers.SafeTitleToken(report.Position)))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
