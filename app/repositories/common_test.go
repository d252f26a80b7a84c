package repositories

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNextID(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	defer db.Close()

	t.Run("first ID", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, PostSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, id)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("sequential IDs", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			for i := 2; i <= 300; i++ {
				id, err := getNextID(txn, PostSeqKey)
				assert.NoError(t, err)
				assert.Equal(t, i, id)
			}
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("different sequence keys", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			commentID, err := getNextID(txn, CommentSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, commentID, "Comment sequence should start from 1")
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("discarded transaction does not advance", func(t *testing.T) {
		txn := db.NewTransaction(true)
		_, err := getNextID(txn, "test:seq")
		require.NoError(t, err)
		txn.Discard()

		err = db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, "test:seq")
			assert.NoError(t, err)
			assert.Equal(t, 1, id)
			return nil
		})
		assert.NoError(t, err)
	})
}

func TestCommentKeys(t *testing.T) {
	assert.Equal(t, "comment:1:12", string(commentKey(1, 12)))
	assert.Equal(t, "comment:1:", string(commentPrefix(1)))
	assert.NotContains(t, string(commentKey(11, 2)), string(commentPrefix(1)))
	assert.Equal(t, "idx:comment:12", string(commentIndexKey(12)))
}

func TestUpdateReplaysConflicts(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	defer db.Close()

	attempts := 0
	var id int
	err = update(context.Background(), db, func(txn *badger.Txn) error {
		attempts++
		var err error
		if id, err = getNextID(txn, "test:seq"); err != nil {
			return err
		}
		if attempts == 1 {
			// Another writer takes the next ID first.
			require.NoError(t, db.Update(func(other *badger.Txn) error {
				_, err := getNextID(other, "test:seq")
				return err
			}))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 2, id)
}

func TestUpdateReturnsOtherErrors(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	defer db.Close()

	attempts := 0
	err = update(context.Background(), db, func(txn *badger.Txn) error {
		attempts++
		return ErrNotFound
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, attempts)
}
