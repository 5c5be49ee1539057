package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type tablesRepository struct {
	db *sqlx.DB
}

func NewTablesRepository(db *sqlx.DB) TablesRepository {
	return &tablesRepository{db: db}
}

// CountTablesDB reports how many blog tables exist in the public schema.
func (r *tablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_name IN ('posts', 'categories', 'post_categories')
	`)
	if err != nil {
		return 0, classify(fmt.Errorf("count tables: %w", err), "failed to inspect database")
	}

	return count, nil
}

// Reset wipes all blog content. Only the seeder calls it.
func (r *tablesRepository) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `TRUNCATE post_categories, posts, categories`)
	if err != nil {
		return classify(fmt.Errorf("truncate tables: %w", err), "failed to reset database")
	}

	return nil
}
