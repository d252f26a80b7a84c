package services

import (
	"context"
	"errors"
	"testing"

	"blog/app/events"
	"blog/app/models"
	"blog/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService(t *testing.T) {
	ctx := context.Background()
	postService, service, _, rec := newTestServices()

	post, err := postService.CreatePost(ctx, "Test Post", "Test Body")
	require.NoError(t, err)

	t.Run("create comment without author", func(t *testing.T) {
		comments, err := service.CreateComment(ctx, post.ID, "   ", "Nice!")
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, models.DefaultAuthor, comments[0].Author)
		assert.Equal(t, "Nice!", comments[0].Content)
		assert.Equal(t, post.ID, comments[0].PostID)
	})

	t.Run("newest comment first", func(t *testing.T) {
		comments, err := service.CreateComment(ctx, post.ID, "Ada", " second ")
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "Ada", comments[0].Author)
		assert.Equal(t, "second", comments[0].Content)
	})

	t.Run("comment count", func(t *testing.T) {
		posts, err := postService.ListPosts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, posts[0].CommentCount)

		comments, err := service.ListComments(ctx, post.ID)
		require.NoError(t, err)
		assert.Len(t, comments, 2)

		_, detail, err := postService.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, comments, detail)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := service.CreateComment(ctx, post.ID, "Ada", "  ")
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "content", verr.Field)
	})

	t.Run("empty content on missing post is a validation error", func(t *testing.T) {
		_, err := service.CreateComment(ctx, 999, "", "")
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := service.CreateComment(ctx, 999, "", "hello")
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		comments, err := service.ListComments(ctx, 999)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("delete comment", func(t *testing.T) {
		postID, comments, err := service.DeleteComment(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, post.ID, postID)
		require.Len(t, comments, 1)
		assert.Equal(t, "second", comments[0].Content)
	})

	t.Run("delete missing comment", func(t *testing.T) {
		_, _, err := service.DeleteComment(ctx, 1)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("events", func(t *testing.T) {
		var types []string
		for _, ev := range rec.Events() {
			types = append(types, ev.Type)
		}
		assert.Equal(t, []string{
			events.PostCreated,
			events.CommentCreated,
			events.CommentCreated,
			events.CommentDeleted,
		}, types)

		last := rec.Events()[3]
		assert.Equal(t, post.ID, last.PostID)
		assert.Equal(t, 1, last.CommentID)
	})
}
