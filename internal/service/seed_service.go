package service

import (
	"context"
	"fmt"
	"log/slog"

	"lifeblog/internal/models"
	"lifeblog/internal/repository"
)

type SeedService interface {
	Seed(ctx context.Context) ([]models.Post, error)
}

type seedService struct {
	tablesRepo repository.TablesRepository
	categories CategoryService
	posts      PostService
}

func NewSeedService(tablesRepo repository.TablesRepository, categories CategoryService, posts PostService) SeedService {
	return &seedService{tablesRepo: tablesRepo, categories: categories, posts: posts}
}

var seedCategories = []string{
	"Personal growth",
	"Relationships",
	"Career",
	"Lifestyle",
	"Thinking & philosophy",
}

var seedPosts = []struct {
	title      string
	content    string
	coverKey   string
	categories []int
}{
	{
		title:      "A turning point in life: what lies beyond a decision",
		content:    "Sometimes life asks for a big decision.<br/>Take a new road, or keep walking the old one.<br/>Beyond that choice was a view I had never imagined.<br/>I learned to stop fearing failure and to <b>listen to myself</b>.",
		coverKey:   "cover-img-red.jpg",
		categories: []int{0, 2},
	},
	{
		title:      "Facing the depth of relationships",
		content:    "Everyone struggles with other people at some point.<br/>Yet that struggle is where most of life gets learned.<br/>The effort to understand, and the courage to be understood.<br/>When both are there, a <em>real</em> connection is born.",
		coverKey:   "cover-img-green.jpg",
		categories: []int{1, 0},
	},
	{
		title:      "Small daily steps make a life",
		content:    "Big goals are wonderful, but small daily steps matter most.<br/>Live each day with care.<br/>Watch the sunrise, laugh with people, try something new.<br/>Before you know it, those habits add up to a <strong>good life</strong>.",
		coverKey:   "cover-img-purple.jpg",
		categories: []int{3, 4},
	},
}

// Seed wipes all blog content and writes the sample categories and posts.
func (s *seedService) Seed(ctx context.Context) ([]models.Post, error) {
	if err := s.tablesRepo.Reset(ctx); err != nil {
		return nil, err
	}

	categoryIDs := make([]string, 0, len(seedCategories))
	for _, name := range seedCategories {
		category, err := s.categories.CreateCategory(ctx, models.CategoryInput{Name: name})
		if err != nil {
			return nil, fmt.Errorf("seed category %q: %w", name, err)
		}
		categoryIDs = append(categoryIDs, category.ID)
	}

	posts := make([]models.Post, 0, len(seedPosts))
	for _, sp := range seedPosts {
		input := models.PostInput{
			Title:         sp.title,
			Content:       sp.content,
			CoverImageKey: sp.coverKey,
		}
		for _, idx := range sp.categories {
			input.CategoryIDs = append(input.CategoryIDs, categoryIDs[idx])
		}

		post, err := s.posts.CreatePost(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("seed post %q: %w", sp.title, err)
		}
		posts = append(posts, *post)
	}

	slog.InfoContext(ctx, "database seeded", "categories", len(categoryIDs), "posts", len(posts))
	return posts, nil
}
