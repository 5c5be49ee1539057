package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
)

// multipart framing allowance on top of the file size limit
const multipartOverhead = 1 << 20

func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	maxSize := h.Cfg.Server.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteError(w, fmt.Sprintf("file is too large (max %s)", humanize.IBytes(uint64(maxSize))), http.StatusRequestEntityTooLarge)
		} else {
			WriteError(w, "failed to read multipart form", http.StatusBadRequest)
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		file, _, err = r.FormFile("image")
	}
	if err != nil {
		WriteError(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := h.ImageService.UploadCoverImage(r.Context(), file)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, image, http.StatusCreated)
}
