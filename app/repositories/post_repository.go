package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog/app/models"
)

// SQLPostRepository implements PostRepository on a SQLStore
type SQLPostRepository struct {
	store *SQLStore
}

// List retrieves all posts newest-first with their comment counts
func (r *SQLPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.body, p.created_at,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
		FROM posts p
		ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Body, &post.CreatedAt, &post.CommentCount); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

// GetByID retrieves a post by ID
func (r *SQLPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := r.store.db.QueryRowContext(ctx,
		r.store.rebind("SELECT id, title, body, created_at FROM posts WHERE id = ?"), id,
	).Scan(&post.ID, &post.Title, &post.Body, &post.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

// GetWithComments reads the post and its comments in one transaction
func (r *SQLPostRepository) GetWithComments(ctx context.Context, id int) (*models.Post, []*models.Comment, error) {
	var (
		post     models.Post
		comments []*models.Comment
	)
	err := r.store.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			r.store.rebind("SELECT id, title, body, created_at FROM posts WHERE id = ?"), id,
		).Scan(&post.ID, &post.Title, &post.Body, &post.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("post %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get post %d: %w", id, err)
		}

		comments, err = (&SQLCommentRepository{store: r.store}).list(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &post, comments, nil
}

// Create inserts a new post and fills in its ID
func (r *SQLPostRepository) Create(ctx context.Context, post *models.Post) error {
	post.BeforeCreate(time.Now())
	err := r.store.db.QueryRowContext(ctx,
		r.store.rebind("INSERT INTO posts (title, body, created_at) VALUES (?, ?, ?) RETURNING id"),
		post.Title, post.Body, post.CreatedAt,
	).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// Delete deletes a post; the foreign key removes its comments
func (r *SQLPostRepository) Delete(ctx context.Context, id int) error {
	res, err := r.store.db.ExecContext(ctx, r.store.rebind("DELETE FROM posts WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	return nil
}
