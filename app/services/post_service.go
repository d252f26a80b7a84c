package services

import (
	"context"

	"blog/app/events"
	"blog/app/models"
	"blog/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
	events   events.Publisher
}

// NewPostService creates a new PostService. A nil publisher drops events.
func NewPostService(postRepo repositories.PostRepository, publisher events.Publisher) *PostService {
	return &PostService{
		postRepo: postRepo,
		events:   orNop(publisher),
	}
}

// ListPosts returns all posts newest first, each with its comment count
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPost retrieves a post by ID together with its comments, newest first
func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, []*models.Comment, error) {
	return s.postRepo.GetWithComments(ctx, id)
}

// CreatePost validates and stores a new post
func (s *PostService) CreatePost(ctx context.Context, title, body string) (*models.Post, error) {
	form := models.NewPostForm(title, body)
	if err := form.Validate(); err != nil {
		return nil, newValidationError(err, "Title and body are required.")
	}

	post := form.Post()
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	publish(ctx, s.events, events.Event{Type: events.PostCreated, PostID: post.ID})
	return post, nil
}
