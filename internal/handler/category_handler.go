package handlers

import (
	"encoding/json"
	"net/http"

	"lifeblog/internal/models"
)

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategoryService.ListCategories(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, categories, http.StatusOK)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	category, err := h.CategoryService.CreateCategory(r.Context(), req)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, category, http.StatusCreated)
}
