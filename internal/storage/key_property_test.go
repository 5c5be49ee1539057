//go:build property

package storage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestContentKeyProperties(t *testing.T) {
	store := newTestStore(t, newMemoryClient())
	properties := gopter.NewProperties(nil)

	properties.Property("key depends only on content", prop.ForAll(
		func(data []byte) bool {
			return store.Key(data) == store.Key(bytes.Clone(data))
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.Property("key is prefix plus 32 hex characters", prop.ForAll(
		func(data []byte) bool {
			key := store.Key(data)
			digest, ok := strings.CutPrefix(key, "private/")
			return ok && len(digest) == 32 && strings.Trim(digest, "0123456789abcdef") == ""
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.Property("resolve is stable and rooted at the bucket", prop.ForAll(
		func(data []byte) bool {
			key := store.Key(data)
			url, ok := store.Resolve(key)
			again, _ := store.Resolve(key)
			return ok && url == again && strings.HasPrefix(url, "https://cdn.example.com/cover-image/private/")
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}
