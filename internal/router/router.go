package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Pangeneses/NeonServer/internal/middleware/metrics"
	"github.com/Pangeneses/NeonServer/internal/setup"
)

// New creates and configures a new mux router with all the routes.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)

	// setup CORS for frontend
	r.Use(handlers.CORS(
		handlers.AllowedOrigins(deps.Config.Public.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	))

	r.Use(metrics.Middleware)

	// Add a wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	articles := r.PathPrefix("/articles").Subrouter()
	articles.HandleFunc("", h.CreateArticle).Methods("POST")
	articles.HandleFunc("/chunk", h.ChunkArticles).Methods("GET")
	articles.HandleFunc("/{id}", h.GetArticle).Methods("GET")
	articles.HandleFunc("/{id}", h.UpdateArticle).Methods("PUT", "PATCH")
	articles.HandleFunc("/{id}", h.DeleteArticle).Methods("DELETE")

	threads := r.PathPrefix("/threads").Subrouter()
	threads.HandleFunc("", h.CreateThread).Methods("POST")
	threads.HandleFunc("/chunk", h.ChunkThreads).Methods("GET")
	threads.HandleFunc("/{id}", h.GetThread).Methods("GET")
	threads.HandleFunc("/{id}", h.UpdateThread).Methods("PUT", "PATCH")
	threads.HandleFunc("/{id}", h.DeleteThread).Methods("DELETE")

	posts := r.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", h.CreatePost).Methods("POST")
	posts.HandleFunc("/chunk", h.ChunkPosts).Methods("GET")
	posts.HandleFunc("/batch", h.BatchPosts).Methods("GET")

	users := r.PathPrefix("/users").Subrouter()
	users.HandleFunc("", h.RegisterUser).Methods("POST")
	users.HandleFunc("/auth/login", h.LoginUser).Methods("POST")
	users.HandleFunc("/listed", h.ListedUsers).Methods("GET")
	users.HandleFunc("/scan", h.ScanUsers).Methods("GET")
	users.HandleFunc("/{id}", h.UpdateUser).Methods("PUT")

	r.HandleFunc("/images", h.UploadImage).Methods("POST")
	r.HandleFunc("/images/{filename}", h.DeleteImage).Methods("DELETE")
	r.PathPrefix("/images/").Handler(
		http.StripPrefix("/images/", http.FileServer(http.Dir(deps.Images.Root()))),
	).Methods("GET")

	return r
}
