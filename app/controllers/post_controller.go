package controllers

import (
	"net/http"

	"blog/app/models"
	"blog/app/services"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	templates   *Templates
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, templates *Templates) *PostController {
	return &PostController{
		postService: postService,
		templates:   templates,
	}
}

// Index renders the full post listing
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	data := struct {
		Posts []*models.Post
	}{
		Posts: posts,
	}
	render(w, r, pc.templates.index, "layout", data)
}

// Create handles the new post form and redirects back to the listing
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := pc.postService.CreatePost(r.Context(), r.PostFormValue("title"), r.PostFormValue("body")); err != nil {
		handleError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Show renders a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	post, comments, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	data := struct {
		Post        *models.Post
		CommentList CommentListView
	}{
		Post:        post,
		CommentList: CommentListView{PostID: post.ID, Comments: comments},
	}
	render(w, r, pc.templates.show, "layout", data)
}
