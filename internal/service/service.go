package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"lifeblog/internal/apperr"
	"lifeblog/internal/config"
	"lifeblog/internal/repository"
	"lifeblog/internal/sanitize"
	"lifeblog/internal/storage"
)

type Service struct {
	Post     PostService
	Category CategoryService
	Image    ImageService
	Seed     SeedService
}

func NewService(rep *repository.Repository, cfg *config.Config, store storage.Storage) *Service {
	validate := validator.New()
	posts := NewPostService(rep.Post, store, sanitize.New(), validate)
	categories := NewCategoryService(rep.Category, validate)

	return &Service{
		Post:     posts,
		Category: categories,
		Image:    NewImageService(store, cfg.Server.MaxUploadSize),
		Seed:     NewSeedService(rep.Tables, categories, posts),
	}
}

// validationError flattens validator output into one readable message.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Validation("invalid request: %v", err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "max":
			messages = append(messages, field+" must be at most "+fe.Param()+" characters")
		case "uuid":
			messages = append(messages, field+" must contain valid ids")
		default:
			messages = append(messages, field+" is invalid")
		}
	}

	return apperr.Validation("%s", strings.Join(messages, "; "))
}
