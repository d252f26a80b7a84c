package models

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// PostForm is the trimmed input of the new post form.
type PostForm struct {
	Title string `validate:"required"`
	Body  string `validate:"required"`
}

// NewPostForm trims the submitted fields.
func NewPostForm(title, body string) PostForm {
	return PostForm{
		Title: strings.TrimSpace(title),
		Body:  strings.TrimSpace(body),
	}
}

// Validate reports the first missing field as a validator.ValidationErrors.
func (f PostForm) Validate() error {
	return validate.Struct(f)
}

// Post builds the model to persist.
func (f PostForm) Post() *Post {
	return &Post{Title: f.Title, Body: f.Body}
}

// CommentForm is the trimmed input of the comment form.
type CommentForm struct {
	PostID  int
	Author  string
	Content string `validate:"required"`
}

// NewCommentForm trims the submitted fields and falls back to DefaultAuthor.
func NewCommentForm(postID int, author, content string) CommentForm {
	author = strings.TrimSpace(author)
	if author == "" {
		author = DefaultAuthor
	}
	return CommentForm{
		PostID:  postID,
		Author:  author,
		Content: strings.TrimSpace(content),
	}
}

func (f CommentForm) Validate() error {
	return validate.Struct(f)
}

func (f CommentForm) Comment() *Comment {
	return &Comment{PostID: f.PostID, Author: f.Author, Content: f.Content}
}
