package repositories

import (
	"context"
	"io"

	"blog/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	// List returns every post newest-first with its live comment count.
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id int) (*models.Post, error)
	// GetWithComments reads a post and its comments, newest first, from one snapshot.
	GetWithComments(ctx context.Context, id int) (*models.Post, []*models.Comment, error)
	Create(ctx context.Context, post *models.Post) error
	// Delete removes the post together with its comments.
	Delete(ctx context.Context, id int) error
}

// CommentRepository defines the interface for comment data access.
// The mutating methods write and read back the post's comment list in one transaction.
type CommentRepository interface {
	ListByPost(ctx context.Context, postID int) ([]*models.Comment, error)
	CreateAndList(ctx context.Context, comment *models.Comment) ([]*models.Comment, error)
	DeleteAndList(ctx context.Context, id int) (postID int, comments []*models.Comment, err error)
}

// Store is an opened storage backend.
type Store interface {
	io.Closer
	Posts() PostRepository
	Comments() CommentRepository
	// Init creates the schema if needed and seeds the welcome post into an empty store.
	Init(ctx context.Context) error
	// Backup writes a consistent copy of the store to path.
	Backup(ctx context.Context, path string) error
}
