package routes

import (
	"fmt"
	"io/fs"
	"net/http"

	"blog/app/controllers"
	"blog/app/events"
	"blog/app/middleware"
	"blog/app/repositories"
	"blog/app/services"
	"blog/app/views"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes wires the blog's handlers on top of store and returns the router.
// HTTP metrics are registered on reg and exposed at /metrics.
func SetupRoutes(store repositories.Store, publisher events.Publisher, reg *prometheus.Registry) (*mux.Router, error) {
	templates, err := controllers.LoadTemplates(views.FS)
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(views.FS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	postService := services.NewPostService(store.Posts(), publisher)
	commentService := services.NewCommentService(store.Comments(), publisher)

	postController := controllers.NewPostController(postService, templates)
	commentController := controllers.NewCommentController(commentService, templates)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logger)
	router.Use(metrics.Handler)

	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static)))).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})).Methods("GET")

	// Posts
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/", postController.Create).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}", postController.Show).Methods("GET")

	// Comments, answered with the comment list fragment
	router.HandleFunc("/posts/{id:[0-9]+}/comments", commentController.Create).Methods("POST")
	router.HandleFunc("/comments/{id:[0-9]+}", commentController.Delete).Methods("DELETE")

	return router, nil
}
