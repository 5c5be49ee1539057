package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"lifeblog/internal/apperr"
	"lifeblog/internal/models"
	"lifeblog/internal/repository"
	"lifeblog/internal/sanitize"
	"lifeblog/internal/storage"
)

type PostService interface {
	CreatePost(ctx context.Context, input models.PostInput) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	UpdatePost(ctx context.Context, postID string, input models.PostInput) error
	DeletePost(ctx context.Context, postID string) error
}

type postService struct {
	postRepo  repository.PostRepository
	store     storage.Storage
	sanitizer *sanitize.Sanitizer
	validate  *validator.Validate
}

func NewPostService(postRepo repository.PostRepository, store storage.Storage, sanitizer *sanitize.Sanitizer, validate *validator.Validate) PostService {
	return &postService{
		postRepo:  postRepo,
		store:     store,
		sanitizer: sanitizer,
		validate:  validate,
	}
}

func (p *postService) CreatePost(ctx context.Context, input models.PostInput) (*models.Post, error) {
	post, categoryIDs, err := p.preparePost(input)
	if err != nil {
		return nil, err
	}

	if err := p.postRepo.Create(ctx, post, categoryIDs); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "post created", "post_id", post.ID, "categories", len(categoryIDs))
	return p.withCoverURL(post), nil
}

func (p *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := p.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		p.withCoverURL(&posts[i])
	}

	return posts, nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	return p.withCoverURL(post), nil
}

func (p *postService) UpdatePost(ctx context.Context, postID string, input models.PostInput) error {
	post, categoryIDs, err := p.preparePost(input)
	if err != nil {
		return err
	}
	post.ID = postID

	if err := p.postRepo.Update(ctx, post, categoryIDs); err != nil {
		return err
	}

	slog.InfoContext(ctx, "post updated", "post_id", post.ID, "categories", len(categoryIDs))
	return nil
}

func (p *postService) DeletePost(ctx context.Context, postID string) error {
	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "post deleted", "post_id", postID)
	return nil
}

// preparePost validates the input and turns it into a post row plus a
// duplicate-free list of category ids.
func (p *postService) preparePost(input models.PostInput) (*models.Post, []string, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.CoverImageKey = strings.TrimSpace(input.CoverImageKey)

	if err := p.validate.Struct(input); err != nil {
		return nil, nil, validationError(err)
	}

	content := p.sanitizer.Content(input.Content)
	if strings.TrimSpace(content) == "" {
		return nil, nil, apperr.Validation("content is empty after removing unsupported markup")
	}

	post := &models.Post{
		Title:   input.Title,
		Content: content,
	}
	if input.CoverImageKey != "" {
		key := input.CoverImageKey
		post.CoverImageKey = &key
	}

	return post, uniqueIDs(input.CategoryIDs), nil
}

func (p *postService) withCoverURL(post *models.Post) *models.Post {
	post.CoverImageURL = ""
	if post.CoverImageKey != nil {
		post.CoverImageURL, _ = p.store.Resolve(*post.CoverImageKey)
	}
	return post
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
