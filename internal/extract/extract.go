// Package extract pulls plain text out of uploaded documents (resumes,
// question-bank corpora). PDF, plain text, and markdown are supported.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for file types other than .pdf/.txt/.md.
var ErrUnsupportedFormat = errors.New("extract: unsupported file format")

// FromBytes extracts plain text from a document's raw bytes. ext is the file
// extension including the dot, matched case-insensitively.
func FromBytes(content []byte, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return fromPDF(content)
	case ".txt", ".md":
		return strings.TrimSpace(string(content)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// FromFile extracts plain text from a document on disk.
func FromFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("extract.FromFile: %w", err)
	}
	return FromBytes(content, filepath.Ext(path))
}

func fromPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract: read pdf: %w", err)
	}

	text, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract: pdf text: %w", err)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, text); err != nil {
		return "", fmt.Errorf("extract: pdf text: %w", err)
	}

	return strings.TrimSpace(b.String()), nil
}
