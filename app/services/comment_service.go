package services

import (
	"context"

	"blog/app/events"
	"blog/app/models"
	"blog/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	events      events.Publisher
}

// NewCommentService creates a new CommentService. A nil publisher drops events.
func NewCommentService(commentRepo repositories.CommentRepository, publisher events.Publisher) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		events:      orNop(publisher),
	}
}

// ListComments retrieves all comments for a post, newest first
func (s *CommentService) ListComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

// CreateComment validates and stores a comment, returning the post's updated comment list.
// Content is validated before the post is looked up.
func (s *CommentService) CreateComment(ctx context.Context, postID int, author, content string) ([]*models.Comment, error) {
	form := models.NewCommentForm(postID, author, content)
	if err := form.Validate(); err != nil {
		return nil, newValidationError(err, "Comment content must not be empty.")
	}

	comment := form.Comment()
	comments, err := s.commentRepo.CreateAndList(ctx, comment)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, events.Event{Type: events.CommentCreated, PostID: postID, CommentID: comment.ID})
	return comments, nil
}

// DeleteComment deletes a comment and returns its former post ID with that post's
// updated comment list
func (s *CommentService) DeleteComment(ctx context.Context, id int) (int, []*models.Comment, error) {
	postID, comments, err := s.commentRepo.DeleteAndList(ctx, id)
	if err != nil {
		return 0, nil, err
	}

	publish(ctx, s.events, events.Event{Type: events.CommentDeleted, PostID: postID, CommentID: id})
	return postID, comments, nil
}
