// Package service persists converted bookmarks into the local store.
package service

import (
	"strings"

	"github.com/dastanaron/bookmarks-convert/internal/models"
	"github.com/dastanaron/bookmarks-convert/internal/normalize"
	"github.com/dastanaron/bookmarks-convert/internal/repository"
)

// ImportService writes converted bookmarks into a repository, recreating the
// folder hierarchy each record was found under.
type ImportService struct {
	repo   repository.Repository
	source string
	// folder path -> id, so shared prefixes hit the store once per run
	folderIDs map[string]int
}

// NewImportService creates a new import service for one conversion run.
func NewImportService(repo repository.Repository, source string) *ImportService {
	return &ImportService{
		repo:      repo,
		source:    source,
		folderIDs: make(map[string]int),
	}
}

// Import persists every record and returns how many rows were newly
// created. Records whose URL already exists in the store are updated in
// place.
func (s *ImportService) Import(raws []models.RawBookmark) (int, error) {
	created := 0
	for _, raw := range raws {
		folderID, err := s.ensureFolderChain(raw.Folders)
		if err != nil {
			return created, err
		}

		b := normalize.Normalize(raw, s.source)
		isNew, err := s.repo.Bookmarks().Upsert(&b, folderID)
		if err != nil {
			return created, err
		}
		if isNew {
			created++
		}
	}
	return created, nil
}

// ensureFolderChain upserts each level of the folder path top-down and
// returns the innermost folder's ID, or nil for bookmarks found outside any
// folder.
func (s *ImportService) ensureFolderChain(folders []string) (*int, error) {
	var parentID *int
	for i, name := range folders {
		key := strings.Join(folders[:i+1], "/")
		if id, ok := s.folderIDs[key]; ok {
			id := id
			parentID = &id
			continue
		}

		folder, err := s.repo.Folders().Upsert(name, parentID)
		if err != nil {
			return nil, err
		}
		s.folderIDs[key] = folder.ID
		id := folder.ID
		parentID = &id
	}
	return parentID, nil
}
