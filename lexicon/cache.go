package lexicon

import (
	"errors"
	"strings"

	"github.com/domino14/remolino/cache"
	"github.com/domino14/remolino/config"
)

// CacheKeyPrefix namespaces dictionaries in the global object cache.
const CacheKeyPrefix = "lexicon:"

// CacheLoadFunc is the function that loads an object into the global cache.
func CacheLoadFunc(cfg *config.Config, key string) (interface{}, error) {
	name := strings.TrimPrefix(key, CacheKeyPrefix)
	return load(cfg, name)
}

// Get loads a named dictionary through the cache, reading its word
// list from disk only on first use.
func Get(cfg *config.Config, name string) (*Dictionary, error) {
	obj, err := cache.Load(cfg, CacheKeyPrefix+name, CacheLoadFunc)
	if err != nil {
		return nil, err
	}
	ret, ok := obj.(*Dictionary)
	if !ok {
		return nil, errors.New("could not read dictionary from file")
	}
	return ret, nil
}
