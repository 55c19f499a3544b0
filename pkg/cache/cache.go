package cache

import (
	cache_pkg "github.com/patrickmn/go-cache"
)

// Handler is an in-memory key/value store for values that are pure functions
// of their key, such as pseudonyms. Entries never expire.
type Handler struct {
	client *cache_pkg.Cache
}

func New() (*Handler, error) {
	client := cache_pkg.New(cache_pkg.NoExpiration, 0)
	return &Handler{
		client: client,
	}, nil
}

// Get returns the cached value for the key, if any.
func (h *Handler) Get(key string) (any, bool) {
	return h.client.Get(key)
}

// Set stores the value for the key.
func (h *Handler) Set(key string, value any) {
	h.client.Set(key, value, cache_pkg.NoExpiration)
}

func (h *Handler) Ping() (bool, error) {
	return true, nil
}
