package repository

import "github.com/dastanaron/bookmarks-convert/internal/models"

// BookmarkRepository defines operations on stored bookmarks
type BookmarkRepository interface {
	List() ([]models.Bookmark, error)
	// Upsert inserts the bookmark or, when the URL already exists, updates
	// the row in place. Returns true if a new row was created.
	Upsert(b *models.Bookmark, folderID *int) (bool, error)
}

// FolderRepository defines operations on stored folders
type FolderRepository interface {
	List() ([]models.Folder, error)
	// Upsert creates the folder under the given parent or returns the
	// existing one.
	Upsert(name string, parentID *int) (*models.Folder, error)
}

// Repository combines all repositories backing the local store
type Repository interface {
	Bookmarks() BookmarkRepository
	Folders() FolderRepository
	Close() error
}
