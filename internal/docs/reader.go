// Package docs extracts plain text from candidate documents. Individual
// failures surface as UnreadableError so pipelines can skip past them.
package docs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// MaxFileSizeMB caps the size of a single document.
const MaxFileSizeMB = 10

var supportedExtensions = []string{".txt", ".pdf", ".docx"}

// Supported reports whether the file's extension is one this reader handles.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range supportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// UnreadableError marks a document that could not be read or parsed. The
// pipeline logs these and continues with the remaining documents.
type UnreadableError struct {
	Path string
	Err  error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("unreadable document %s: %v", e.Path, e.Err)
}

func (e *UnreadableError) Unwrap() error { return e.Err }

func unreadable(path string, err error) *UnreadableError {
	return &UnreadableError{Path: path, Err: err}
}

// ReadFile validates the document and returns its extracted plain text.
func ReadFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", unreadable(path, err)
	}
	if sizeMB := float64(info.Size()) / (1 << 20); sizeMB > MaxFileSizeMB {
		return "", unreadable(path, fmt.Errorf("file too large: %.2fMB (max %dMB)", sizeMB, MaxFileSizeMB))
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", unreadable(path, err)
		}
		return string(b), nil
	case ".pdf":
		return readPDF(path)
	case ".docx":
		return readDOCX(path)
	default:
		return "", unreadable(path, fmt.Errorf("unsupported file type (supported: %s)", strings.Join(supportedExtensions, ", ")))
	}
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", unreadable(path, err)
	}
	defer f.Close()
	plain, err := r.GetPlainText()
	if err != nil {
		return "", unreadable(path, err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", unreadable(path, err)
	}
	return buf.String(), nil
}

func readDOCX(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", unreadable(path, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", unreadable(path, err)
	}
	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", unreadable(path, err)
	}
	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch item.(type) {
		case *docx.Paragraph, *docx.Table:
			fmt.Fprintln(&sb, item)
		}
	}
	return sb.String(), nil
}
