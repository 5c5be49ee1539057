package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes registers the API. Everything under /api/admin goes through protect.
func (h *Handlers) Routes(protect mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/posts", h.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", h.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/categories", h.GetCategories).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(protect)
	admin.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	admin.HandleFunc("/posts/{id}", h.UpdatePost).Methods(http.MethodPut)
	admin.HandleFunc("/posts/{id}", h.DeletePost).Methods(http.MethodDelete)
	admin.HandleFunc("/categories", h.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/images", h.UploadImage).Methods(http.MethodPost)

	return r
}
