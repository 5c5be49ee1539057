package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"

	"lifeblog/internal/apperr"
	"lifeblog/internal/models"
	"lifeblog/internal/storage"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type ImageService interface {
	UploadCoverImage(ctx context.Context, file io.Reader) (*models.StoredImage, error)
}

type imageService struct {
	store   storage.Storage
	maxSize int64
}

func NewImageService(store storage.Storage, maxSize int64) ImageService {
	return &imageService{store: store, maxSize: maxSize}
}

// UploadCoverImage checks that file is a supported image within the size
// limit and stores it under its content key.
func (s *imageService) UploadCoverImage(ctx context.Context, file io.Reader) (*models.StoredImage, error) {
	data, err := io.ReadAll(io.LimitReader(file, s.maxSize+1))
	if err != nil {
		return nil, apperr.Validation("failed to read file: %v", err)
	}

	if len(data) == 0 {
		return nil, apperr.Validation("file is empty")
	}

	if int64(len(data)) > s.maxSize {
		return nil, apperr.TooLarge("file is too large (max %s)", humanize.IBytes(uint64(s.maxSize)))
	}

	contentType := mimetype.Detect(data).String()
	if !allowedImageTypes[contentType] {
		return nil, apperr.Validation("unsupported file type %s; allowed: JPEG, PNG, GIF, WebP", contentType)
	}

	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Validation("file is not a valid image: %v", err)
	}

	key, err := s.store.Upload(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("upload cover image: %w", err)
	}

	url, _ := s.store.Resolve(key)

	slog.InfoContext(ctx, "cover image uploaded", "key", key, "size", humanize.IBytes(uint64(len(data))))

	return &models.StoredImage{
		Key:         key,
		URL:         url,
		ContentType: contentType,
		Size:        int64(len(data)),
		Width:       imgCfg.Width,
		Height:      imgCfg.Height,
	}, nil
}
