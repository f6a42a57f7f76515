package fregex

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Compiled patterns are cached: matchers re-resolve the same pattern
// strings on every document.
var patternCache, _ = lru.New[string, *Pattern](256)

// CompileCached is Compile backed by a process-wide LRU cache.
// Compilation errors are not cached.
func CompileCached(expr string) (*Pattern, error) {
	if p, ok := patternCache.Get(expr); ok {
		return p, nil
	}
	p, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	patternCache.Add(expr, p)
	return p, nil
}
