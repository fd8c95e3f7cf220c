// Package normalize turns raw parsed bookmarks into the record shape the
// viewer application imports: cleaned tags derived from the folder path and
// the URL host, capped at five per record.
package normalize

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/dastanaron/bookmarks-convert/internal/models"
)

// maxTags caps how many tags a single bookmark carries.
const maxTags = 5

// domainTag maps a host substring to the tags it implies. The table is
// ordered; the first matching pattern wins.
type domainTag struct {
	pattern string
	tags    []string
}

var domainTags = []domainTag{
	{"github.com", []string{"development", "code"}},
	{"stackoverflow.com", []string{"development", "qa"}},
	{"youtube.com", []string{"video", "media"}},
	{"twitter.com", []string{"social"}},
	{"x.com", []string{"social"}},
	{"reddit.com", []string{"social", "community"}},
	{"medium.com", []string{"blog", "articles"}},
	{"dev.to", []string{"development", "blog"}},
	{"docs.", []string{"documentation"}},
	{"learn.", []string{"learning", "tutorial"}},
	{"news.", []string{"news"}},
}

// skipTags are the generic container names every browser export carries;
// they say nothing about the bookmark itself, so they never reach the output.
var skipTags = map[string]struct{}{
	"bookmarks-bar":    {},
	"bookmarks":        {},
	"other-bookmarks":  {},
	"mobile-bookmarks": {},
	"imported":         {},
}

var (
	tagStripRe   = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize converts a parsed bookmark into the output record. The result
// depends only on the input record, the source label and the static tables
// above, so repeated calls yield identical output.
func Normalize(raw models.RawBookmark, source string) models.Bookmark {
	tags := make([]string, 0, maxTags)
	seen := make(map[string]struct{})

	add := func(tag string) {
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		if _, ok := skipTags[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for _, folder := range raw.Folders {
		add(CleanTag(folder))
	}
	for _, tag := range TagsFromURL(raw.URL) {
		add(tag)
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}

	title := raw.Title
	if title == "" {
		title = "Untitled"
	}

	return models.Bookmark{
		Title:       title,
		URL:         raw.URL,
		Tags:        tags,
		Description: "",
		Archived:    false,
		CreatedAt:   raw.CreatedAt,
		Source:      source,
	}
}

// CleanTag lowercases a folder name, strips every character outside letters,
// digits, underscore, whitespace and hyphen, and collapses whitespace runs
// to single hyphens.
func CleanTag(tag string) string {
	tag = tagStripRe.ReplaceAllString(strings.ToLower(tag), "")
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(tag), "-")
}

// TagsFromURL derives tags from the URL's host using the domainTags table.
// An unparsable URL or an unmatched host yields no tags.
func TagsFromURL(rawURL string) []string {
	host := extractHost(rawURL)
	if host == "" {
		return nil
	}
	for _, dt := range domainTags {
		if strings.Contains(host, dt.pattern) {
			return dt.tags
		}
	}
	return nil
}

// extractHost returns the URL host with a leading "www." removed.
func extractHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
