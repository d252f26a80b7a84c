package repositories

import (
	"context"
	"fmt"
	"os"
	"time"

	"blog/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is a Store backed by BadgerDB. Badger has no foreign keys, so the
// repositories enforce the post/comment relationship themselves.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens the badger directory at dir, or an in-memory instance.
func OpenBadger(dir string, inMemory bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	} else if dir == "" {
		return nil, fmt.Errorf("badger directory is empty")
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return NewBadgerStore(db), nil
}

// NewBadgerStore wraps an already opened Badger DB.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func (s *BadgerStore) Posts() PostRepository {
	return NewBadgerPostRepository(s.db)
}

func (s *BadgerStore) Comments() CommentRepository {
	return NewBadgerCommentRepository(s.db)
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Init seeds the welcome post when no post exists. There is no schema to create.
func (s *BadgerStore) Init(ctx context.Context) error {
	return update(ctx, s.db, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		prefix := []byte(PostKeyPrefix)
		it.Seek(prefix)
		empty := !it.ValidForPrefix(prefix)
		it.Close()
		if !empty {
			return nil
		}

		post := &models.Post{Title: WelcomeTitle, Body: WelcomeBody}
		return putPost(txn, post, time.Now())
	})
}

// Backup writes a full badger backup to path.
func (s *BadgerStore) Backup(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()

	if _, err := s.db.Backup(f, 0); err != nil {
		return fmt.Errorf("backup badger: %w", err)
	}
	return f.Sync()
}

// Load restores a backup written by Backup into this store.
func (s *BadgerStore) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", path)
	}
	if err := s.db.Load(f, 4); err != nil {
		return fmt.Errorf("restore badger: %w", err)
	}
	return nil
}

func putPost(txn *badger.Txn, post *models.Post, now time.Time) error {
	id, err := getNextID(txn, PostSeqKey)
	if err != nil {
		return err
	}
	post.ID = id
	post.BeforeCreate(now)

	data, err := marshalEntity(post)
	if err != nil {
		return err
	}
	return txn.Set(postKey(post.ID), data)
}
