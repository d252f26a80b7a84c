package controllers

import (
	"net/http"

	"blog/app/services"
)

// CommentController handles HTTP requests for comments. Both actions answer with the
// refreshed comment list fragment.
type CommentController struct {
	commentService *services.CommentService
	templates      *Templates
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, templates *Templates) *CommentController {
	return &CommentController{
		commentService: commentService,
		templates:      templates,
	}
}

// Create handles creating a new comment
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		sendError(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	comments, err := cc.commentService.CreateComment(r.Context(), postID, r.PostFormValue("author"), r.PostFormValue("content"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	cc.templates.renderComments(w, r, postID, comments)
}

// Delete handles deleting a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	postID, comments, err := cc.commentService.DeleteComment(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	cc.templates.renderComments(w, r, postID, comments)
}
