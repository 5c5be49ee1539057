package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"lifeblog/internal/models"
)

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.ListPosts(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.GetPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), req)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.PostService.UpdatePost(r.Context(), mux.Vars(r)["id"], req); err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "post updated"}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.PostService.DeletePost(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "post deleted"}, http.StatusOK)
}
