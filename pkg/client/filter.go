package client

import "strings"

// Filter keeps posts whose title or content contains query, ignoring case,
// and that belong to categoryID when one is given. It works on whatever the
// caller already fetched, so it is only suitable for a small blog.
func Filter(posts []Post, query, categoryID string) []Post {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]Post, 0, len(posts))
	for _, post := range posts {
		if query != "" &&
			!strings.Contains(strings.ToLower(post.Title), query) &&
			!strings.Contains(strings.ToLower(post.Content), query) {
			continue
		}
		if categoryID != "" && !post.HasCategory(categoryID) {
			continue
		}
		out = append(out, post)
	}
	return out
}

func (p Post) HasCategory(categoryID string) bool {
	for _, c := range p.Categories {
		if c.Category.ID == categoryID {
			return true
		}
	}
	return false
}

// Page is one slice of a filtered list. Pages are numbered from 1.
type Page struct {
	Posts      []Post
	Page       int
	TotalPages int
}

// Paginate returns the requested page, clamped into range.
func Paginate(posts []Post, page, perPage int) Page {
	if perPage <= 0 {
		perPage = 10
	}

	totalPages := (len(posts) + perPage - 1) / perPage
	if totalPages == 0 {
		return Page{Posts: []Post{}, Page: 1, TotalPages: 0}
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if end > len(posts) {
		end = len(posts)
	}

	return Page{Posts: posts[start:end], Page: page, TotalPages: totalPages}
}
