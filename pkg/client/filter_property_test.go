//go:build property

package client

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPaginateProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("pages cover the list exactly once in order", prop.ForAll(
		func(n, perPage int) bool {
			list := make([]Post, n)
			for i := range list {
				list[i] = Post{ID: fmt.Sprint(i)}
			}

			first := Paginate(list, 1, perPage)
			seen := make([]Post, 0, n)
			for page := 1; page <= first.TotalPages; page++ {
				seen = append(seen, Paginate(list, page, perPage).Posts...)
			}

			if len(seen) != n {
				return false
			}
			for i := range seen {
				if seen[i].ID != list[i].ID {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 60),
		gen.IntRange(1, 12),
	))

	properties.Property("page is always within range", prop.ForAll(
		func(n, page int) bool {
			got := Paginate(make([]Post, n), page, 5)
			if got.TotalPages == 0 {
				return got.Page == 1 && len(got.Posts) == 0
			}
			return got.Page >= 1 && got.Page <= got.TotalPages && len(got.Posts) <= 5
		},
		gen.IntRange(0, 40),
		gen.IntRange(-5, 20),
	))

	properties.TestingRun(t)
}

func TestFilterProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every result matches the query", prop.ForAll(
		func(titles []string, query string) bool {
			list := make([]Post, len(titles))
			for i, title := range titles {
				list[i] = Post{ID: fmt.Sprint(i), Title: title}
			}

			for _, post := range Filter(list, query, "") {
				if !strings.Contains(strings.ToLower(post.Title), strings.ToLower(strings.TrimSpace(query))) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(10, gen.AlphaString()),
		gen.AlphaString(),
	))

	properties.Property("empty query keeps everything", prop.ForAll(
		func(titles []string) bool {
			list := make([]Post, len(titles))
			for i, title := range titles {
				list[i] = Post{Title: title}
			}
			return len(Filter(list, "", "")) == len(list)
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
