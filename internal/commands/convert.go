package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dastanaron/bookmarks-convert/internal/converter"
	"github.com/dastanaron/bookmarks-convert/internal/logger"
	"github.com/dastanaron/bookmarks-convert/internal/models"
	"github.com/dastanaron/bookmarks-convert/internal/output"
	"github.com/dastanaron/bookmarks-convert/internal/repository"
	"github.com/dastanaron/bookmarks-convert/internal/service"
	"github.com/dastanaron/bookmarks-convert/internal/ui"
)

// ConvertOptions carries the flag values for one conversion run.
type ConvertOptions struct {
	Source        string
	Output        string // explicit output file, single mode only
	OutputDir     string // defaults to the input file's directory
	SplitByFolder bool
	MinBookmarks  int
	DBPath        string // when set, also import into this SQLite store
	Preview       bool
}

// ConvertCommand converts a bookmark export into JSON documents.
type ConvertCommand struct {
	opts ConvertOptions
}

// NewConvertCommand creates a new convert command
func NewConvertCommand(opts ConvertOptions) *ConvertCommand {
	return &ConvertCommand{opts: opts}
}

// Execute runs the conversion for the export at inputPath.
func (c *ConvertCommand) Execute(inputPath string) error {
	logger.Info("Reading bookmark export", map[string]interface{}{"file": inputPath})

	conv := converter.New(c.opts.Source)
	raws, err := conv.Load(inputPath)
	if err != nil {
		return err
	}
	logger.Info("Parsed bookmarks", map[string]interface{}{"count": len(raws)})

	if c.opts.Preview {
		proceed, err := ui.NewPreview(raws, c.opts.Source).Run()
		if err != nil {
			return fmt.Errorf("preview failed: %w", err)
		}
		if !proceed {
			logger.Info("Aborted from preview, nothing written")
			return nil
		}
	}

	outputDir := c.opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}
	writer, err := output.New(outputDir)
	if err != nil {
		return err
	}

	var written []models.Document
	if c.opts.SplitByFolder {
		docs := conv.SplitByFolder(raws, c.opts.MinBookmarks)
		logger.Info("Grouped by top-level folder", map[string]interface{}{"folders": len(docs)})
		for _, fd := range docs {
			path, err := writer.Write(fd.FileName, fd.Document)
			if err != nil {
				return err
			}
			logger.Info("Saved", map[string]interface{}{
				"file":      path,
				"bookmarks": len(fd.Document.Items),
			})
			written = append(written, fd.Document)
		}
	} else {
		doc := conv.SingleDocument(raws)
		var path string
		if c.opts.Output != "" {
			path, err = writer.WriteTo(c.opts.Output, doc)
		} else {
			path, err = writer.Write(inputStem(inputPath), doc)
		}
		if err != nil {
			return err
		}
		logger.Info("Saved", map[string]interface{}{
			"file":      path,
			"bookmarks": len(doc.Items),
		})
		written = append(written, doc)
	}

	if c.opts.DBPath != "" {
		if err := c.importToStore(raws); err != nil {
			return fmt.Errorf("store import failed: %w", err)
		}
	}

	total := 0
	for _, doc := range written {
		total += len(doc.Items)
	}
	logger.Info("Done", map[string]interface{}{
		"bookmarks":   total,
		"unique_tags": converter.UniqueTags(written...),
	})
	return nil
}

// importToStore saves the converted records into the local SQLite store.
func (c *ConvertCommand) importToStore(raws []models.RawBookmark) error {
	if dir := filepath.Dir(c.opts.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	repo, err := repository.NewSQLiteRepository(c.opts.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	imported, err := service.NewImportService(repo, c.opts.Source).Import(raws)
	if err != nil {
		return err
	}
	logger.Info("Imported into store", map[string]interface{}{
		"db":        c.opts.DBPath,
		"bookmarks": imported,
	})
	return nil
}

// inputStem returns the input filename without directory or extension.
func inputStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
