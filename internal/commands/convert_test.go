package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dastanaron/bookmarks-convert/internal/converter"
	"github.com/dastanaron/bookmarks-convert/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `<DL><p>
	<DT><H3>Dev</H3>
	<DL><p>
		<DT><A HREF="https://github.com/x" ADD_DATE="1700000000">Repo</A>
		<DT><A HREF="javascript:void(0)">Bookmarklet</A>
	</DL><p>
	<DT><H3>Reading</H3>
	<DL><p>
		<DT><A HREF="https://medium.com/post">Post</A>
	</DL><p>
</DL><p>
`

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "bookmarks.html")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0644))
	return path
}

func readDocument(t *testing.T, path string) models.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc models.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestConvertCommand_SingleFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)

	cmd := NewConvertCommand(ConvertOptions{Source: "Chrome Import"})
	require.NoError(t, cmd.Execute(input))

	// Defaults: <input stem>.json next to the input file.
	doc := readDocument(t, filepath.Join(dir, "bookmarks.json"))
	assert.Equal(t, "Imported from Chrome Import", doc.Title)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Repo", doc.Items[0].Title)
	assert.Equal(t, "Post", doc.Items[1].Title)

	for _, item := range doc.Items {
		assert.LessOrEqual(t, len(item.Tags), 5)
		assert.True(t, strings.HasPrefix(item.URL, "http://") || strings.HasPrefix(item.URL, "https://"))
	}
}

func TestConvertCommand_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	target := filepath.Join(dir, "out", "custom.json")

	cmd := NewConvertCommand(ConvertOptions{Source: "Chrome Import", Output: target})
	require.NoError(t, cmd.Execute(input))

	doc := readDocument(t, target)
	assert.Len(t, doc.Items, 2)
}

func TestConvertCommand_SplitByFolder(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	outDir := filepath.Join(dir, "split")

	cmd := NewConvertCommand(ConvertOptions{
		Source:        "Chrome Import",
		OutputDir:     outDir,
		SplitByFolder: true,
		MinBookmarks:  1,
	})
	require.NoError(t, cmd.Execute(input))

	dev := readDocument(t, filepath.Join(outDir, "dev.json"))
	assert.Equal(t, "Dev", dev.Title)
	require.Len(t, dev.Items, 1)
	assert.Equal(t, []string{"dev", "development", "code"}, dev.Items[0].Tags)

	reading := readDocument(t, filepath.Join(outDir, "reading.json"))
	assert.Equal(t, "Reading", reading.Title)
	require.Len(t, reading.Items, 1)
}

func TestConvertCommand_MinBookmarksSkipsFolder(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	outDir := filepath.Join(dir, "split")

	cmd := NewConvertCommand(ConvertOptions{
		Source:        "Chrome Import",
		OutputDir:     outDir,
		SplitByFolder: true,
		MinBookmarks:  2,
	})
	require.NoError(t, cmd.Execute(input))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no folder reaches two bookmarks")
}

func TestConvertCommand_NoBookmarks(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "empty.html")
	require.NoError(t, os.WriteFile(input, []byte(`<DL><DT><H3>Empty</H3></DL>`), 0644))

	cmd := NewConvertCommand(ConvertOptions{Source: "Chrome Import"})
	err := cmd.Execute(input)
	assert.ErrorIs(t, err, converter.ErrNoBookmarks)
}

func TestConvertCommand_ImportsIntoStore(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	dbPath := filepath.Join(dir, "store", "bookmarks.db")

	cmd := NewConvertCommand(ConvertOptions{Source: "Chrome Import", DBPath: dbPath})
	require.NoError(t, cmd.Execute(input))

	_, err := os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestInputStem(t *testing.T) {
	assert.Equal(t, "bookmarks", inputStem("/tmp/exports/bookmarks.html"))
	assert.Equal(t, "plain", inputStem("plain"))
}
