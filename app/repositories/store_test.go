package repositories

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"blog/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forEachStore runs fn against a fresh, initialized sqlite store and badger store.
func forEachStore(t *testing.T, fn func(t *testing.T, store Store)) {
	t.Run("sqlite", func(t *testing.T) {
		store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "data", "blog.db"))
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		require.NoError(t, store.Init(context.Background()))
		fn(t, store)
	})
	t.Run("badger", func(t *testing.T) {
		store, err := OpenBadger("", true)
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		require.NoError(t, store.Init(context.Background()))
		fn(t, store)
	})
}

func createPost(t *testing.T, store Store, title string) *models.Post {
	t.Helper()
	post := &models.Post{Title: title, Body: title + " body"}
	require.NoError(t, store.Posts().Create(context.Background(), post))
	require.NotZero(t, post.ID)
	return post
}

func TestInitSeedsOnce(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		require.NoError(t, store.Init(ctx))
		require.NoError(t, store.Init(ctx))

		posts, err := store.Posts().List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, WelcomeTitle, posts[0].Title)
		assert.Equal(t, WelcomeBody, posts[0].Body)
		assert.Equal(t, 0, posts[0].CommentCount)
		assert.False(t, posts[0].CreatedAt.IsZero())
	})
}

func TestInitDoesNotReseedNonEmptyStore(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		createPost(t, store, "Mine")
		require.NoError(t, store.Init(ctx))

		posts, err := store.Posts().List(ctx)
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})
}

func TestPostRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		posts := store.Posts()

		t.Run("newest post listed first", func(t *testing.T) {
			first := createPost(t, store, "First")
			second := createPost(t, store, "Second")

			list, err := posts.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 3)
			assert.Equal(t, second.ID, list[0].ID)
			assert.Equal(t, first.ID, list[1].ID)
			assert.Equal(t, WelcomeTitle, list[2].Title)
		})

		t.Run("get by id", func(t *testing.T) {
			created := createPost(t, store, "Lookup")

			got, err := posts.GetByID(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, "Lookup", got.Title)
			assert.Equal(t, "Lookup body", got.Body)
			assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
		})

		t.Run("get missing post", func(t *testing.T) {
			_, err := posts.GetByID(ctx, 999)
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run("delete missing post", func(t *testing.T) {
			assert.ErrorIs(t, posts.Delete(ctx, 999), ErrNotFound)
		})
	})
}

func TestCommentRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		comments := store.Comments()
		post := createPost(t, store, "Commented")

		var firstID int

		t.Run("create returns refreshed list newest first", func(t *testing.T) {
			first := &models.Comment{PostID: post.ID, Author: "Ada", Content: "first"}
			list, err := comments.CreateAndList(ctx, first)
			require.NoError(t, err)
			require.Len(t, list, 1)
			firstID = first.ID

			second := &models.Comment{PostID: post.ID, Content: "second"}
			list, err = comments.CreateAndList(ctx, second)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "second", list[0].Content)
			assert.Equal(t, models.DefaultAuthor, list[0].Author)
			assert.Equal(t, "first", list[1].Content)
			assert.Equal(t, "Ada", list[1].Author)
		})

		t.Run("comment count follows comments", func(t *testing.T) {
			list, err := store.Posts().List(ctx)
			require.NoError(t, err)
			require.Equal(t, post.ID, list[0].ID)
			assert.Equal(t, 2, list[0].CommentCount)
		})

		t.Run("create on missing post stores nothing", func(t *testing.T) {
			_, err := comments.CreateAndList(ctx, &models.Comment{PostID: 999, Content: "orphan"})
			assert.ErrorIs(t, err, ErrNotFound)

			list, err := comments.ListByPost(ctx, 999)
			require.NoError(t, err)
			assert.Empty(t, list)
		})

		t.Run("delete returns former post and refreshed list", func(t *testing.T) {
			postID, list, err := comments.DeleteAndList(ctx, firstID)
			require.NoError(t, err)
			assert.Equal(t, post.ID, postID)
			require.Len(t, list, 1)
			assert.Equal(t, "second", list[0].Content)

			posts, err := store.Posts().List(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, posts[0].CommentCount)
		})

		t.Run("delete missing comment", func(t *testing.T) {
			_, _, err := comments.DeleteAndList(ctx, firstID)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	})
}

func TestGetWithComments(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		post := createPost(t, store, "Detail")
		other := createPost(t, store, "Other")

		for _, c := range []*models.Comment{
			{PostID: post.ID, Content: "old"},
			{PostID: other.ID, Content: "elsewhere"},
			{PostID: post.ID, Content: "new"},
		} {
			_, err := store.Comments().CreateAndList(ctx, c)
			require.NoError(t, err)
		}

		got, comments, err := store.Posts().GetWithComments(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Detail", got.Title)
		require.Len(t, comments, 2)
		assert.Equal(t, "new", comments[0].Content)
		assert.Equal(t, "old", comments[1].Content)

		_, _, err = store.Posts().GetWithComments(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeletePostCascades(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		post := createPost(t, store, "Doomed")
		other := createPost(t, store, "Survivor")

		c1 := &models.Comment{PostID: post.ID, Content: "one"}
		_, err := store.Comments().CreateAndList(ctx, c1)
		require.NoError(t, err)
		_, err = store.Comments().CreateAndList(ctx, &models.Comment{PostID: post.ID, Content: "two"})
		require.NoError(t, err)
		_, err = store.Comments().CreateAndList(ctx, &models.Comment{PostID: other.ID, Content: "kept"})
		require.NoError(t, err)

		require.NoError(t, store.Posts().Delete(ctx, post.ID))

		_, err = store.Posts().GetByID(ctx, post.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		list, err := store.Comments().ListByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Empty(t, list)

		_, _, err = store.Comments().DeleteAndList(ctx, c1.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		kept, err := store.Comments().ListByPost(ctx, other.ID)
		require.NoError(t, err)
		assert.Len(t, kept, 1)
	})
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "mysql"})
	assert.Error(t, err)
}

func TestDollarBindvars(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO comments (post_id, author) VALUES ($1, $2)",
		dollarBindvars("INSERT INTO comments (post_id, author) VALUES (?, ?)"),
	)
	assert.Equal(t, "SELECT 1", dollarBindvars("SELECT 1"))
}

func TestConcurrentWriters(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		const writers = 20

		var wg sync.WaitGroup
		errs := make(chan error, 2*writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := store.Comments().CreateAndList(ctx, &models.Comment{PostID: 1, Content: "hi"}); err != nil {
					errs <- err
				}
				if err := store.Posts().Create(ctx, &models.Post{Title: "T", Body: "B"}); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Errorf("concurrent write failed: %v", err)
		}

		posts, err := store.Posts().List(ctx)
		require.NoError(t, err)
		assert.Len(t, posts, writers+1)
		ids := make(map[int]bool)
		for _, p := range posts {
			ids[p.ID] = true
		}
		assert.Len(t, ids, writers+1, "post ids must be unique")

		comments, err := store.Comments().ListByPost(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, comments, writers)
	})
}
