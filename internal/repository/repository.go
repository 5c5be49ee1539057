package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"lifeblog/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post, categoryIDs []string) error
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post, categoryIDs []string) error
	Delete(ctx context.Context, postID string) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}

type Repository struct {
	Post     PostRepository
	Category CategoryRepository
	Tables   TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Post:     NewPostRepository(db),
		Category: NewCategoryRepository(db),
		Tables:   NewTablesRepository(db),
	}
}
