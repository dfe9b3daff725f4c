package restaurants

import (
	"fmt"
	"log"
	"sort"
)

// Registry holds the discovered catalog in memory, indexed by slug.
type Registry struct {
	manifests map[string]*Manifest
}

// NewRegistry creates a new empty catalog registry.
func NewRegistry() *Registry {
	return &Registry{
		manifests: make(map[string]*Manifest),
	}
}

// Register adds a restaurant to the registry.
// Returns an error if the slug is already taken.
func (r *Registry) Register(m *Manifest) error {
	if _, exists := r.manifests[m.Slug]; exists {
		return fmt.Errorf("restaurant already registered: %s", m.Slug)
	}
	r.manifests[m.Slug] = m
	return nil
}

// Get retrieves a restaurant by slug.
func (r *Registry) Get(slug string) (*Manifest, bool) {
	m, ok := r.manifests[slug]
	return m, ok
}

// List returns all registered restaurants sorted by slug for deterministic
// ordering.
func (r *Registry) List() []*Manifest {
	out := make([]*Manifest, 0, len(r.manifests))
	for _, m := range r.manifests {
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Slug < out[j].Slug
	})

	return out
}

// Count returns the number of registered restaurants.
func (r *Registry) Count() int {
	return len(r.manifests)
}

// LoadRegistry discovers manifests from the catalog directory and registers
// them in a new Registry. Duplicate slugs are logged and skipped; an empty
// catalog is not an error.
func LoadRegistry(catalogDir string) (*Registry, error) {
	discovered, err := DiscoverManifests(catalogDir)
	if err != nil {
		return nil, err
	}

	registry := NewRegistry()
	for _, m := range discovered {
		if err := registry.Register(m); err != nil {
			log.Printf("Warning: duplicate restaurant slug, skipping %s: %v", m.Slug, err)
			continue
		}
	}

	return registry, nil
}
