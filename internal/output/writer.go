// Package output handles naming and writing of the generated JSON documents.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dastanaron/bookmarks-convert/internal/models"
)

// Writer writes converted documents to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting outputDir, creating the directory if
// needed. An empty outputDir means the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{OutputDir: outputDir}, nil
}

// Write marshals the document and writes it to <name>.json inside the output
// directory, returning the full path.
func (w *Writer) Write(name string, doc models.Document) (string, error) {
	return w.WriteTo(filepath.Join(w.OutputDir, name+".json"), doc)
}

// WriteTo writes the document to an explicit file path, creating parent
// directories as needed.
func (w *Writer) WriteTo(path string, doc models.Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling document %q: %w", doc.Title, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

var (
	nameStripRe = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	nameSpaceRe = regexp.MustCompile(`\s+`)
)

// SafeName converts a folder name into a filesystem-safe file stem:
// lowercased, special characters removed, whitespace runs replaced with
// underscores. A name with nothing left falls back to "uncategorized".
func SafeName(folder string) string {
	name := nameStripRe.ReplaceAllString(strings.ToLower(folder), "")
	name = nameSpaceRe.ReplaceAllString(strings.TrimSpace(name), "_")
	if name == "" {
		return "uncategorized"
	}
	return name
}
