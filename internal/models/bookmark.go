package models

import "strings"

// UncategorizedFolder is the folder path assigned to bookmarks found outside
// any folder.
const UncategorizedFolder = "Uncategorized"

// RawBookmark is a single link as extracted from the bookmark file, before
// tag normalization. Folders holds the folder stack snapshot taken when the
// link was opened, outermost first.
type RawBookmark struct {
	Title     string
	URL       string
	CreatedAt *string // RFC 3339 UTC, nil when the export had no usable ADD_DATE
	Folders   []string
}

// FolderPath returns the folder chain joined with "/", or
// UncategorizedFolder when the bookmark sat outside any folder.
func (b *RawBookmark) FolderPath() string {
	if len(b.Folders) == 0 {
		return UncategorizedFolder
	}
	return strings.Join(b.Folders, "/")
}

// TopFolder returns the outermost folder name. Output splitting groups by
// this value.
func (b *RawBookmark) TopFolder() string {
	if len(b.Folders) == 0 {
		return UncategorizedFolder
	}
	return b.Folders[0]
}

// Bookmark is the normalized record the viewer application imports.
type Bookmark struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Archived    bool     `json:"archived"`
	CreatedAt   *string  `json:"created_at"`
	Source      string   `json:"source"`
}

// Document is one output file: a title plus the bookmarks it contains.
type Document struct {
	Title string     `json:"title"`
	Items []Bookmark `json:"items"`
}

// Folder represents a bookmark folder in the local store.
type Folder struct {
	ID       int
	Name     string
	ParentID *int
}
