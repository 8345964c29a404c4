package httpd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/okutsev/httpool/internal/metrics"
	"github.com/okutsev/httpool/pkg/cache"
)

const (
	helloPage    = "hello.html"
	notFoundPage = "404.html"
)

// Built-in bodies used when the page files are missing from the pages
// directory, so the server stays useful out of the box.
var fallbackPages = map[string][]byte{
	helloPage:    []byte("<!DOCTYPE html><html><head><title>Hello</title></head><body><h1>Hello!</h1></body></html>\n"),
	notFoundPage: []byte("<!DOCTYPE html><html><head><title>Not Found</title></head><body><h1>404 Not Found</h1></body></html>\n"),
}

// PageStore serves canned response bodies from a directory on disk, with an
// LRU/TTL cache in front so a hot page is read once, not per request.
type PageStore struct {
	dir   string
	cache *cache.LRU[string, []byte]
}

func NewPageStore(dir string, cfg cache.Config) *PageStore {
	return &PageStore{
		dir:   dir,
		cache: cache.New[string, []byte](cfg),
	}
}

// Load returns the body for name. Only bare file names are served; anything
// with a path separator falls through to the not-found fallback.
func (s *PageStore) Load(name string) []byte {
	if name != filepath.Base(name) {
		return fallbackPages[notFoundPage]
	}

	if body, ok := s.cache.Get(name); ok {
		return body
	}

	body, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		slog.Warn("page read failed, using fallback", "page", name, "error", err)
		if fb, ok := fallbackPages[name]; ok {
			return fb
		}
		return fallbackPages[notFoundPage]
	}

	s.cache.Set(name, body)
	metrics.PageCacheSize.Set(float64(s.cache.Len()))
	return body
}

// CacheLen reports how many pages are currently cached.
func (s *PageStore) CacheLen() int { return s.cache.Len() }
