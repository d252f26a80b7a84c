package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"blog/app/models"
	"blog/app/repositories"
)

// Store is an in-memory repositories.Store for service and controller tests.
type Store struct {
	mutex    sync.RWMutex
	posts    map[int]*models.Post
	comments map[int]*models.Comment
	postSeq  int
	comSeq   int
	clock    func() time.Time

	// Err, when set, is returned by every repository call.
	Err error
}

func NewStore() *Store {
	var tick int64
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &Store{
		posts:    make(map[int]*models.Post),
		comments: make(map[int]*models.Comment),
		clock: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	}
}

func (s *Store) Posts() repositories.PostRepository       { return (*postRepository)(s) }
func (s *Store) Comments() repositories.CommentRepository { return (*commentRepository)(s) }
func (s *Store) Close() error                             { return nil }

func (s *Store) Init(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if len(s.posts) == 0 {
		s.createPost(&models.Post{Title: repositories.WelcomeTitle, Body: repositories.WelcomeBody})
	}
	return nil
}

func (s *Store) Backup(ctx context.Context, path string) error {
	return repositories.ErrBackupUnsupported
}

// Clear drops all data and resets the ID sequences.
func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.posts = make(map[int]*models.Post)
	s.comments = make(map[int]*models.Comment)
	s.postSeq = 0
	s.comSeq = 0
}

func (s *Store) createPost(post *models.Post) {
	s.postSeq++
	post.ID = s.postSeq
	post.BeforeCreate(s.clock())
	stored := *post
	s.posts[post.ID] = &stored
}

func (s *Store) listComments(postID int) []*models.Comment {
	var out []*models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

type postRepository Store

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	s := (*Store)(r)
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	var posts []*models.Post
	for _, p := range s.posts {
		cp := *p
		cp.CommentCount = len(s.listComments(p.ID))
		posts = append(posts, &cp)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	s := (*Store)(r)
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	post, exists := s.posts[id]
	if !exists {
		return nil, fmt.Errorf("post %d: %w", id, repositories.ErrNotFound)
	}
	cp := *post
	return &cp, nil
}

func (r *postRepository) GetWithComments(ctx context.Context, id int) (*models.Post, []*models.Comment, error) {
	s := (*Store)(r)
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.Err != nil {
		return nil, nil, s.Err
	}

	post, exists := s.posts[id]
	if !exists {
		return nil, nil, fmt.Errorf("post %d: %w", id, repositories.ErrNotFound)
	}
	cp := *post
	return &cp, s.listComments(id), nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	s := (*Store)(r)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.createPost(post)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id int) error {
	s := (*Store)(r)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, exists := s.posts[id]; !exists {
		return fmt.Errorf("post %d: %w", id, repositories.ErrNotFound)
	}
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
	delete(s.posts, id)
	return nil
}

type commentRepository Store

func (r *commentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	s := (*Store)(r)
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.listComments(postID), nil
}

func (r *commentRepository) CreateAndList(ctx context.Context, comment *models.Comment) ([]*models.Comment, error) {
	s := (*Store)(r)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	if _, exists := s.posts[comment.PostID]; !exists {
		return nil, fmt.Errorf("post %d: %w", comment.PostID, repositories.ErrNotFound)
	}
	s.comSeq++
	comment.ID = s.comSeq
	comment.BeforeCreate(s.clock())
	stored := *comment
	s.comments[comment.ID] = &stored
	return s.listComments(comment.PostID), nil
}

func (r *commentRepository) DeleteAndList(ctx context.Context, id int) (int, []*models.Comment, error) {
	s := (*Store)(r)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return 0, nil, s.Err
	}

	comment, exists := s.comments[id]
	if !exists {
		return 0, nil, fmt.Errorf("comment %d: %w", id, repositories.ErrNotFound)
	}
	delete(s.comments, id)
	return comment.PostID, s.listComments(comment.PostID), nil
}
