package screening

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/talentsift/talentsift/internal/docs"
)

// Pipeline-level precondition failures. Both are fatal to the run that hit
// them, not to the process.
var (
	ErrNoCandidates        = errors.New("no candidate documents found")
	ErrNoReadableDocuments = errors.New("no candidate documents could be read")
)

// Document is one readable candidate document: its extracted text plus the
// source filename the ranking tool keys its response on.
type Document struct {
	Filename string
	Text     string
}

// LoadDocuments reads every supported document in dir, best effort: an
// unreadable document is logged and skipped, and the run only fails when
// nothing survives. Results are ordered by filename so repeated runs send
// the ranking tool an identical batch.
func LoadDocuments(dir string, logger *log.Logger) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading candidate folder %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !docs.Supported(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCandidates, dir)
	}
	sort.Strings(names)

	out := make([]Document, 0, len(names))
	for _, name := range names {
		text, err := docs.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Printf("skipping %s: %v", name, err)
			continue
		}
		out = append(out, Document{Filename: name, Text: text})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoReadableDocuments, dir)
	}
	return out, nil
}
