package models

import "time"

// Post represents a blog post. CommentCount is only filled by listing queries.
type Post struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`
	CommentCount int       `json:"-"`
}

// Comment represents a reader comment attached to exactly one post.
type Comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
