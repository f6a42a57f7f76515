package fregex

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Error values for weight-profile resolution.
var (
	ErrUnknownProfile = errors.New("unknown weight profile")
)

// Weights is an edit-operation weight triple used during ratio
// normalization.
type Weights struct {
	Insert     int
	Delete     int
	Substitute int
}

var (
	weightsMu sync.RWMutex
	profiles  = map[string]Weights{
		"indel": {Insert: 1, Delete: 1, Substitute: 2},
		"lev":   {Insert: 1, Delete: 1, Substitute: 1},
	}
)

// RegisterWeights adds or replaces a named weight profile.
func RegisterWeights(name string, w Weights) {
	weightsMu.Lock()
	defer weightsMu.Unlock()
	profiles[name] = w
}

// GetWeights resolves a weight profile by name. The empty string
// resolves to "indel".
func GetWeights(name string) (Weights, error) {
	if name == "" {
		name = "indel"
	}
	weightsMu.RLock()
	defer weightsMu.RUnlock()
	w, ok := profiles[name]
	if !ok {
		return Weights{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return w, nil
}

// ProfileNames returns the registered profile names, sorted.
func ProfileNames() []string {
	weightsMu.RLock()
	defer weightsMu.RUnlock()
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
