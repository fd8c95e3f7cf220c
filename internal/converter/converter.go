// Package converter drives a single conversion run: read and parse the
// export, normalize every record, and assemble the output documents.
package converter

import (
	"errors"
	"fmt"
	"os"

	"github.com/dastanaron/bookmarks-convert/internal/logger"
	"github.com/dastanaron/bookmarks-convert/internal/models"
	"github.com/dastanaron/bookmarks-convert/internal/normalize"
	"github.com/dastanaron/bookmarks-convert/internal/output"
	"github.com/dastanaron/bookmarks-convert/internal/parser"
)

// ErrNoBookmarks reports a readable, well-formed document that contained no
// convertible bookmarks. It is distinct from read failures.
var ErrNoBookmarks = errors.New("no bookmarks found")

// FolderDocument is one per-folder output document plus the file stem it
// should be written under.
type FolderDocument struct {
	Folder   string
	FileName string
	Document models.Document
}

// Converter converts one bookmark export, labeling every record with a
// source.
type Converter struct {
	parser *parser.Parser
	source string
}

// New creates a Converter for the given source label.
func New(source string) *Converter {
	return &Converter{parser: parser.New(), source: source}
}

// Load reads and parses the bookmark export at path. A missing or unreadable
// file is fatal for the run; a readable document with no usable links
// returns ErrNoBookmarks.
func (c *Converter) Load(path string) ([]models.RawBookmark, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	raws, err := c.parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	if len(raws) == 0 {
		return nil, ErrNoBookmarks
	}
	return raws, nil
}

// SingleDocument normalizes every record into one document.
func (c *Converter) SingleDocument(raws []models.RawBookmark) models.Document {
	return models.Document{
		Title: "Imported from " + c.source,
		Items: c.normalizeAll(raws),
	}
}

// SplitByFolder groups records by top-level folder and builds one document
// per folder holding at least minBookmarks records. Separate occurrences of
// the same folder name merge into one document. Group order follows first
// appearance in the export.
func (c *Converter) SplitByFolder(raws []models.RawBookmark, minBookmarks int) []FolderDocument {
	groups := make(map[string][]models.RawBookmark)
	var order []string
	for _, raw := range raws {
		top := raw.TopFolder()
		if _, ok := groups[top]; !ok {
			order = append(order, top)
		}
		groups[top] = append(groups[top], raw)
	}

	var docs []FolderDocument
	for _, folder := range order {
		group := groups[folder]
		if len(group) < minBookmarks {
			logger.Info("Skipping folder below minimum", map[string]interface{}{
				"folder":    folder,
				"bookmarks": len(group),
				"min":       minBookmarks,
			})
			continue
		}
		docs = append(docs, FolderDocument{
			Folder:   folder,
			FileName: output.SafeName(folder),
			Document: models.Document{Title: folder, Items: c.normalizeAll(group)},
		})
	}
	return docs
}

func (c *Converter) normalizeAll(raws []models.RawBookmark) []models.Bookmark {
	items := make([]models.Bookmark, 0, len(raws))
	for _, raw := range raws {
		items = append(items, normalize.Normalize(raw, c.source))
	}
	return items
}

// UniqueTags counts the distinct tags across a set of documents.
func UniqueTags(docs ...models.Document) int {
	seen := make(map[string]struct{})
	for _, doc := range docs {
		for _, item := range doc.Items {
			for _, tag := range item.Tags {
				seen[tag] = struct{}{}
			}
		}
	}
	return len(seen)
}
