package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dastanaron/bookmarks-convert/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
	<DT><H3>Dev</H3>
	<DL><p>
		<DT><A HREF="https://github.com/x" ADD_DATE="1700000000">Repo</A>
	</DL><p>
	<DT><H3>News</H3>
	<DL><p>
		<DT><A HREF="https://news.ycombinator.com">HN</A>
	</DL><p>
	<DT><H3>Dev</H3>
	<DL><p>
		<DT><A HREF="https://stackoverflow.com/q/1">Question</A>
	</DL><p>
	<DT><A HREF="https://example.com">Loose</A>
</DL><p>
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	raws, err := New("Chrome Import").Load(writeSample(t, sampleExport))
	require.NoError(t, err)
	require.Len(t, raws, 4)
	assert.Equal(t, "Repo", raws[0].Title)
	assert.Equal(t, "Uncategorized", raws[3].FolderPath())
}

func TestLoad_NoBookmarks(t *testing.T) {
	path := writeSample(t, `<DL><DT><H3>Empty</H3><DL></DL></DL>`)

	_, err := New("Chrome Import").Load(path)
	assert.ErrorIs(t, err, ErrNoBookmarks)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New("Chrome Import").Load(filepath.Join(t.TempDir(), "nope.html"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoBookmarks)
}

func TestSingleDocument(t *testing.T) {
	conv := New("Chrome Desktop")
	raws, err := conv.Load(writeSample(t, sampleExport))
	require.NoError(t, err)

	doc := conv.SingleDocument(raws)

	assert.Equal(t, "Imported from Chrome Desktop", doc.Title)
	require.Len(t, doc.Items, 4)
	assert.Equal(t, "Chrome Desktop", doc.Items[0].Source)
	assert.Equal(t, []string{"dev", "development", "code"}, doc.Items[0].Tags)
}

func TestSplitByFolder_MergesSameNamedFolders(t *testing.T) {
	conv := New("Chrome Import")
	raws, err := conv.Load(writeSample(t, sampleExport))
	require.NoError(t, err)

	docs := conv.SplitByFolder(raws, 1)

	// Two separate "Dev" folders collapse into one document; groups keep
	// first-appearance order.
	require.Len(t, docs, 3)
	assert.Equal(t, "Dev", docs[0].Folder)
	assert.Equal(t, "dev", docs[0].FileName)
	require.Len(t, docs[0].Document.Items, 2)
	assert.Equal(t, "Repo", docs[0].Document.Items[0].Title)
	assert.Equal(t, "Question", docs[0].Document.Items[1].Title)

	assert.Equal(t, "News", docs[1].Folder)
	assert.Equal(t, "Uncategorized", docs[2].Folder)
	assert.Equal(t, "uncategorized", docs[2].FileName)
}

func TestSplitByFolder_MinBookmarks(t *testing.T) {
	conv := New("Chrome Import")
	raws, err := conv.Load(writeSample(t, sampleExport))
	require.NoError(t, err)

	docs := conv.SplitByFolder(raws, 2)

	require.Len(t, docs, 1)
	assert.Equal(t, "Dev", docs[0].Folder)
}

func TestUniqueTags(t *testing.T) {
	docs := []models.Document{
		{Items: []models.Bookmark{
			{Tags: []string{"dev", "code"}},
			{Tags: []string{"dev", "news"}},
		}},
		{Items: []models.Bookmark{
			{Tags: []string{"code"}},
		}},
	}

	assert.Equal(t, 3, UniqueTags(docs...))
}
