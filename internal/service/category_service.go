package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"lifeblog/internal/models"
	"lifeblog/internal/repository"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, input models.CategoryInput) (*models.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	validate     *validator.Validate
}

func NewCategoryService(categoryRepo repository.CategoryRepository, validate *validator.Validate) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, validate: validate}
}

func (c *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return c.categoryRepo.List(ctx)
}

// CreateCategory does not enforce unique names.
func (c *categoryService) CreateCategory(ctx context.Context, input models.CategoryInput) (*models.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := c.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	category := &models.Category{Name: input.Name}
	if err := c.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "category created", "category_id", category.ID)
	return category, nil
}
