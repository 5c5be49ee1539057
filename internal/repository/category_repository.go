package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lifeblog/internal/models"
)

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, created_at, updated_at FROM categories ORDER BY created_at, name`

	categories := []models.Category{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, classify(err, "failed to list categories")
	}

	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, name, created_at, updated_at)
		VALUES (:id, :name, :created_at, :updated_at)
	`

	if category.ID == "" {
		category.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	if _, err := r.db.NamedExecContext(ctx, query, category); err != nil {
		return classify(fmt.Errorf("insert category: %w", err), "failed to create category")
	}

	return nil
}
