package models

import (
	"time"
)

type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CategoryRef is the trimmed category shape nested under a post.
type CategoryRef struct {
	ID   string `json:"id" db:"category_id"`
	Name string `json:"name" db:"category_name"`
}

// PostCategory mirrors one join row; on a post it is serialized as
// {"category": {"id", "name"}}.
type PostCategory struct {
	PostID     string      `json:"-" db:"post_id"`
	CategoryID string      `json:"-" db:"category_id"`
	Category   CategoryRef `json:"category" db:"-"`
}

type Post struct {
	ID            string         `json:"id" db:"id"`
	Title         string         `json:"title" db:"title"`
	Content       string         `json:"content" db:"content"`
	CoverImageKey *string        `json:"coverImageKey,omitempty" db:"cover_image_key"`
	CoverImageURL string         `json:"coverImageUrl,omitempty" db:"-"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`
	Categories    []PostCategory `json:"categories" db:"-"`
}

// CategoryIDs lists the ids of the post's associations.
func (p *Post) CategoryIDs() []string {
	ids := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.Category.ID)
	}
	return ids
}

// PostInput is the write body for create and update.
type PostInput struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Content       string   `json:"content" validate:"required"`
	CoverImageKey string   `json:"coverImageKey" validate:"max=512"`
	CategoryIDs   []string `json:"categoryIds" validate:"dive,uuid"`
}

type CategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

type StoredImage struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}
