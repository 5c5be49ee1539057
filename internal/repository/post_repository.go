package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"lifeblog/internal/apperr"
	"lifeblog/internal/models"
)

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

const postColumns = `id, title, content, cover_image_key, created_at, updated_at`

type categoryLinkRow struct {
	PostID       string `db:"post_id"`
	CategoryID   string `db:"category_id"`
	CategoryName string `db:"category_name"`
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

// Create inserts the post and its category links in one transaction.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post, categoryIDs []string) error {
	query := `
		INSERT INTO posts (id, title, content, cover_image_key, created_at, updated_at)
		VALUES (:id, :title, :content, :cover_image_key, :created_at, :updated_at)
	`

	if post.ID == "" {
		post.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	return withTx(ctx, r.DB, "failed to create post", func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, post); err != nil {
			return fmt.Errorf("insert post: %w", err)
		}

		if err := insertCategoryLinks(ctx, tx, post.ID, categoryIDs); err != nil {
			return err
		}

		posts := []models.Post{*post}
		if err := attachCategories(ctx, tx, posts); err != nil {
			return err
		}
		post.Categories = posts[0].Categories

		return nil
	})
}

// List returns every post, newest first.
func (r *PostRepositoryImpl) List(ctx context.Context) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`

	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query); err != nil {
		return nil, classify(err, "failed to list posts")
	}

	if err := attachCategories(ctx, r.DB, posts); err != nil {
		return nil, classify(err, "failed to list posts")
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	if !validID(postID) {
		return nil, apperr.NotFound("post %s not found", postID)
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	var post models.Post
	if err := r.DB.GetContext(ctx, &post, query, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("post %s not found", postID)
		}
		return nil, classify(err, "failed to get post")
	}

	posts := []models.Post{post}
	if err := attachCategories(ctx, r.DB, posts); err != nil {
		return nil, classify(err, "failed to get post")
	}

	return &posts[0], nil
}

// Update overwrites the post fields and replaces its category set wholesale.
// The stored row is not read back; callers that need it use GetByID.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post, categoryIDs []string) error {
	if !validID(post.ID) {
		return apperr.NotFound("post %s not found", post.ID)
	}

	query := `
		UPDATE posts SET
			title = $1,
			content = $2,
			cover_image_key = $3,
			updated_at = $4
		WHERE id = $5
	`

	post.UpdatedAt = time.Now().UTC()

	return withTx(ctx, r.DB, "failed to update post", func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, post.Title, post.Content, post.CoverImageKey, post.UpdatedAt, post.ID)
		if err != nil {
			return fmt.Errorf("update post: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("check updated rows: %w", err)
		}

		if rowsAffected == 0 {
			return apperr.NotFound("post %s not found", post.ID)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM post_categories WHERE post_id = $1`, post.ID); err != nil {
			return fmt.Errorf("clear post categories: %w", err)
		}

		return insertCategoryLinks(ctx, tx, post.ID, categoryIDs)
	})
}

// Delete removes the post and its category links. The cover image blob is
// left in storage.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	if !validID(postID) {
		return apperr.NotFound("post %s not found", postID)
	}

	return withTx(ctx, r.DB, "failed to delete post", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM post_categories WHERE post_id = $1`, postID); err != nil {
			return fmt.Errorf("delete post categories: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
		if err != nil {
			return fmt.Errorf("delete post: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("check deleted rows: %w", err)
		}

		if rowsAffected == 0 {
			return apperr.NotFound("post %s not found", postID)
		}

		return nil
	})
}

func insertCategoryLinks(ctx context.Context, tx *sqlx.Tx, postID string, categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	links := make([]models.PostCategory, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		links = append(links, models.PostCategory{PostID: postID, CategoryID: categoryID})
	}

	query := `INSERT INTO post_categories (post_id, category_id) VALUES (:post_id, :category_id)`
	if _, err := tx.NamedExecContext(ctx, query, links); err != nil {
		return fmt.Errorf("insert post categories: %w", err)
	}

	return nil
}

// attachCategories loads the category links for all posts with one query.
func attachCategories(ctx context.Context, q sqlx.QueryerContext, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(posts))
	for i := range posts {
		posts[i].Categories = []models.PostCategory{}
		ids = append(ids, posts[i].ID)
	}

	query := `
		SELECT pc.post_id, pc.category_id, c.name AS category_name
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = ANY($1)
		ORDER BY c.created_at, c.name
	`

	var rows []categoryLinkRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("load post categories: %w", err)
	}

	byPost := make(map[string][]models.PostCategory, len(posts))
	for _, row := range rows {
		byPost[row.PostID] = append(byPost[row.PostID], models.PostCategory{
			PostID:     row.PostID,
			CategoryID: row.CategoryID,
			Category:   models.CategoryRef{ID: row.CategoryID, Name: row.CategoryName},
		})
	}

	for i := range posts {
		if links, ok := byPost[posts[i].ID]; ok {
			posts[i].Categories = links
		}
	}

	return nil
}
