// Package parser reconstructs the folder hierarchy of a browser bookmark
// export from its flat tag stream.
//
// Exports share the same structure regardless of browser:
//
//	<DL>
//	    <DT><H3>Folder Name</H3>
//	    <DL>
//	        <DT><A HREF="url" ADD_DATE="timestamp">Title</A>
//	    </DL>
//	</DL>
//
// These files are habitually malformed (unclosed <DT>, stray </DL>), so the
// parser walks the raw token stream instead of a repaired DOM and keeps an
// explicit folder stack: a folder name is pushed when text appears inside an
// <H3>, and one entry is popped on every </DL>. Each link snapshots the
// stack at the moment its <A> opens.
package parser

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dastanaron/bookmarks-convert/internal/models"

	"golang.org/x/net/html"
)

// Parser extracts bookmarks from browser-exported HTML.
type Parser struct{}

// New creates a new parser. A Parser may be reused across documents; all
// per-document state lives inside Parse.
func New() *Parser {
	return &Parser{}
}

// Parse consumes the whole document and returns, in document order, every
// link whose URL uses the http or https scheme. Malformed markup never fails
// the parse; only a reader error does, and bookmarks extracted up to that
// point are still returned.
//
// When several non-empty text runs occur inside one <A> (an entity-heavy
// title can tokenize that way), the last one wins.
func (p *Parser) Parse(r io.Reader) ([]models.RawBookmark, error) {
	var (
		bookmarks     []models.RawBookmark
		folderStack   []string
		pending       *models.RawBookmark
		inFolderTitle bool
		inLink        bool
	)

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return bookmarks, err
			}
			return bookmarks, nil

		case html.StartTagToken:
			t := z.Token()
			switch t.Data {
			case "h3":
				inFolderTitle = true
			case "a":
				inLink = true
				pending = newPending(t, folderStack)
			}

		case html.TextToken:
			text := strings.TrimSpace(z.Token().Data)
			if text == "" {
				continue
			}
			if inFolderTitle {
				folderStack = append(folderStack, text)
			} else if inLink && pending != nil {
				pending.Title = text
			}

		case html.EndTagToken:
			t := z.Token()
			switch t.Data {
			case "h3":
				inFolderTitle = false
			case "a":
				inLink = false
				if pending != nil && hasHTTPScheme(pending.URL) {
					bookmarks = append(bookmarks, *pending)
				}
				pending = nil
			case "dl":
				// Extra close markers are common; never underflow.
				if len(folderStack) > 0 {
					folderStack = folderStack[:len(folderStack)-1]
				}
			}
		}
	}
}

// newPending starts a bookmark record for an opened <A>, snapshotting the
// folder stack by value so later pushes and pops cannot alter it.
func newPending(t html.Token, folderStack []string) *models.RawBookmark {
	b := &models.RawBookmark{
		Folders: append([]string(nil), folderStack...),
	}
	for _, attr := range t.Attr {
		switch attr.Key {
		case "href":
			b.URL = attr.Val
		case "add_date":
			b.CreatedAt = parseAddDate(attr.Val)
		}
	}
	return b
}

// hasHTTPScheme reports whether the URL is retained. Anything else
// (javascript:, chrome:, data:) is dropped, as is a link with no HREF.
func hasHTTPScheme(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// parseAddDate converts an ADD_DATE value (Unix seconds) to an RFC 3339 UTC
// instant. Unparsable or negative values leave the creation time unset.
func parseAddDate(raw string) *string {
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || seconds < 0 {
		return nil
	}
	ts := time.Unix(seconds, 0).UTC().Format(time.RFC3339)
	return &ts
}
