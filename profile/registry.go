package profile

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// registry holds all registered device profiles
var (
	registry = make(map[string]Profile)
	mu       sync.RWMutex
)

// Register adds a new profile to the registry.
// This is typically called from init() functions in profile packages.
func Register(p Profile) error {
	mu.Lock()
	defer mu.Unlock()

	name := strings.ToLower(p.Name())
	if _, exists := registry[name]; exists {
		return fmt.Errorf("profile %q already registered", name)
	}

	registry[name] = p
	return nil
}

// MustRegister registers a profile and panics on error.
// This is useful for init() functions.
func MustRegister(p Profile) {
	if err := Register(p); err != nil {
		panic(err)
	}
}

// Get retrieves a profile by name (case-insensitive)
func Get(name string) (Profile, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, exists := registry[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("unknown profile: %s", name)
	}
	return p, nil
}

// List returns all registered profile names in alphabetical order
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered profiles
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(registry)
}

// ForEach calls the provided function for each registered profile
func ForEach(fn func(name string, p Profile)) {
	mu.RLock()
	defer mu.RUnlock()

	for name, p := range registry {
		fn(name, p)
	}
}
