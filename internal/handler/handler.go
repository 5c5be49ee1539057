package handlers

import (
	"context"

	"lifeblog/internal/config"
	"lifeblog/internal/repository"
	"lifeblog/internal/service"
)

// Pinger reports whether the database answers.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	PostService     service.PostService
	CategoryService service.CategoryService
	ImageService    service.ImageService
	TablesRepo      repository.TablesRepository
	DB              Pinger
	Cfg             *config.Config
}

func NewHandlers(repo *repository.Repository, service *service.Service, db Pinger, config *config.Config) *Handlers {
	return &Handlers{
		PostService:     service.Post,
		CategoryService: service.Category,
		ImageService:    service.Image,
		TablesRepo:      repo.Tables,
		DB:              db,
		Cfg:             config,
	}
}
