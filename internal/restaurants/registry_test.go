package restaurants

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryRejectsDuplicateSlug(t *testing.T) {
	r := NewRegistry()

	assert.NoError(t, r.Register(&Manifest{Slug: "spice-garden", Name: "Spice Garden"}))
	assert.Error(t, r.Register(&Manifest{Slug: "spice-garden", Name: "Imposter"}))
	assert.Equal(t, 1, r.Count())
}

func TestRegistryListSortedBySlug(t *testing.T) {
	r := NewRegistry()
	for _, slug := range []string{"zen-sushi", "am-bakery", "midway-grill"} {
		assert.NoError(t, r.Register(&Manifest{Slug: slug, Name: slug}))
	}

	list := r.List()
	assert.Len(t, list, 3)
	assert.Equal(t, "am-bakery", list[0].Slug)
	assert.Equal(t, "midway-grill", list[1].Slug)
	assert.Equal(t, "zen-sushi", list[2].Slug)
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	assert.NoError(t, r.Register(&Manifest{Slug: "zen-sushi", Name: "Zen Sushi"}))

	m, ok := r.Get("zen-sushi")
	assert.True(t, ok)
	assert.Equal(t, "Zen Sushi", m.Name)

	_, ok = r.Get("nope")
	assert.False(t, ok)
}

func TestLoadRegistryFromDirectory(t *testing.T) {
	r, err := LoadRegistry(filepath.Join("testdata", "catalog"))

	assert.NoError(t, err)
	assert.Equal(t, 1, r.Count())

	m, ok := r.Get("spice-garden")
	assert.True(t, ok)
	assert.Equal(t, "Spice Garden", m.Name)
}
