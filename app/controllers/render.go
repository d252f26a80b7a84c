package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"time"

	"blog/app/models"
	"blog/app/repositories"
	"blog/app/services"

	"github.com/gorilla/mux"
)

// CommentListView is the data of the comment list fragment.
type CommentListView struct {
	PostID   int
	Comments []*models.Comment
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04")
	},
}

// Templates holds the parsed page and fragment templates.
type Templates struct {
	index    *template.Template
	show     *template.Template
	comments *template.Template
}

// LoadTemplates parses the views found in fsys.
func LoadTemplates(fsys fs.FS) (*Templates, error) {
	parse := func(files ...string) (*template.Template, error) {
		t, err := template.New("").Funcs(funcs).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parse templates %v: %w", files, err)
		}
		return t, nil
	}

	var (
		t   Templates
		err error
	)
	if t.index, err = parse("layout.html", "posts/index.html"); err != nil {
		return nil, err
	}
	if t.show, err = parse("layout.html", "posts/show.html", "shared/comments.html"); err != nil {
		return nil, err
	}
	if t.comments, err = parse("shared/comments.html"); err != nil {
		return nil, err
	}
	return &t, nil
}

// render executes into a buffer first so template failures still produce a clean 500.
func render(w http.ResponseWriter, r *http.Request, t *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		handleError(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// renderComments writes the comment list fragment.
func (t *Templates) renderComments(w http.ResponseWriter, r *http.Request, postID int, comments []*models.Comment) {
	render(w, r, t.comments, "comment_list", CommentListView{PostID: postID, Comments: comments})
}

// handleError maps service errors to HTTP statuses.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		sendError(w, verr.Message, http.StatusBadRequest)
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, "Not Found", http.StatusNotFound)
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		sendError(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func sendError(w http.ResponseWriter, message string, status int) {
	http.Error(w, message, status)
}

// pathID reads a numeric route variable. Values that do not fit an int cannot name a
// stored record, so they are reported as not found.
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, mux.Vars(r)[name], repositories.ErrNotFound)
	}
	return id, nil
}
