package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog/app/models"
)

// SQLCommentRepository implements CommentRepository on a SQLStore
type SQLCommentRepository struct {
	store *SQLStore
}

// ListByPost retrieves all comments for a post, newest first
func (r *SQLCommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	return r.list(ctx, r.store.db, postID)
}

// CreateAndList inserts the comment after checking its post exists and returns the
// post's refreshed comment list.
func (r *SQLCommentRepository) CreateAndList(ctx context.Context, comment *models.Comment) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.store.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			r.store.rebind("SELECT 1 FROM posts WHERE id = ?"), comment.PostID,
		).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("post %d: %w", comment.PostID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("check post %d: %w", comment.PostID, err)
		}

		comment.BeforeCreate(time.Now())
		err = tx.QueryRowContext(ctx,
			r.store.rebind("INSERT INTO comments (post_id, author, content, created_at) VALUES (?, ?, ?, ?) RETURNING id"),
			comment.PostID, comment.Author, comment.Content, comment.CreatedAt,
		).Scan(&comment.ID)
		if err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}

		comments, err = r.list(ctx, tx, comment.PostID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteAndList deletes a comment and returns its former post's refreshed comment list.
func (r *SQLCommentRepository) DeleteAndList(ctx context.Context, id int) (int, []*models.Comment, error) {
	var (
		postID   int
		comments []*models.Comment
	)
	err := r.store.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			r.store.rebind("SELECT post_id FROM comments WHERE id = ?"), id,
		).Scan(&postID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("comment %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get comment %d: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx, r.store.rebind("DELETE FROM comments WHERE id = ?"), id); err != nil {
			return fmt.Errorf("delete comment %d: %w", id, err)
		}

		comments, err = r.list(ctx, tx, postID)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return postID, comments, nil
}

func (r *SQLCommentRepository) list(ctx context.Context, q queryer, postID int) ([]*models.Comment, error) {
	rows, err := q.QueryContext(ctx, r.store.rebind(`
		SELECT id, post_id, author, content, created_at
		FROM comments
		WHERE post_id = ?
		ORDER BY created_at DESC, id DESC`), postID)
	if err != nil {
		return nil, fmt.Errorf("list comments for post %d: %w", postID, err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
