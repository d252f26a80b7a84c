package repositories

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"blog/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// ListByPost retrieves all comments for a post, newest first
func (r *BadgerCommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		comments, err = listComments(txn, postID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateAndList stores the comment under its post and returns the post's refreshed list
func (r *BadgerCommentRepository) CreateAndList(ctx context.Context, comment *models.Comment) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		if _, err := getPost(txn, comment.PostID); err != nil {
			return err
		}

		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id
		comment.BeforeCreate(time.Now())

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}
		if err := txn.Set(commentKey(comment.PostID, comment.ID), data); err != nil {
			return err
		}
		index := binary.BigEndian.AppendUint64(nil, uint64(comment.PostID))
		if err := txn.Set(commentIndexKey(comment.ID), index); err != nil {
			return err
		}

		comments, err = listComments(txn, comment.PostID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteAndList deletes a comment and returns its former post's refreshed list
func (r *BadgerCommentRepository) DeleteAndList(ctx context.Context, id int) (int, []*models.Comment, error) {
	var (
		postID   int
		comments []*models.Comment
	)
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		item, err := txn.Get(commentIndexKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("comment %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}
		err = item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("corrupt index for comment %d", id)
			}
			postID = int(binary.BigEndian.Uint64(val))
			return nil
		})
		if err != nil {
			return err
		}

		if err := txn.Delete(commentKey(postID, id)); err != nil {
			return err
		}
		if err := txn.Delete(commentIndexKey(id)); err != nil {
			return err
		}

		comments, err = listComments(txn, postID)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return postID, comments, nil
}

func listComments(txn *badger.Txn, postID int) ([]*models.Comment, error) {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	var comments []*models.Comment
	prefix := commentPrefix(postID)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var comment models.Comment
		err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal comment: %w", err)
		}
		comments = append(comments, &comment)
	}
	sortComments(comments)
	return comments, nil
}
