package restaurants

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadManifestValid(t *testing.T) {
	m, err := LoadManifest(filepath.Join("testdata", "catalog", "spice-garden", "restaurant.yaml"))

	assert.NoError(t, err)
	assert.Equal(t, "spice-garden", m.Slug)
	assert.Equal(t, "Spice Garden", m.Name)
	assert.Equal(t, "North Indian", m.Cuisine)
	assert.Equal(t, 4.3, m.Rating)
	assert.Equal(t, 450, m.PriceForTwo)
	assert.Len(t, m.Menu, 2)
	assert.Equal(t, "Butter Chicken", m.Menu[0].Name)
	assert.Equal(t, float64(320), m.Menu[0].Price)
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	_, err := LoadManifest(filepath.Join("testdata", "catalog", "broken", "restaurant.yaml"))

	assert.Error(t, err)
}

func TestLoadManifestRejectsMissingSlug(t *testing.T) {
	_, err := LoadManifest(filepath.Join("testdata", "missing-slug.yaml"))

	assert.ErrorContains(t, err, "slug")
}

func TestLoadManifestRejectsOutOfRangeRating(t *testing.T) {
	_, err := LoadManifest(filepath.Join("testdata", "bad-rating.yaml"))

	assert.ErrorContains(t, err, "validation failed")
}

func TestDiscoverManifestsSkipsInvalid(t *testing.T) {
	manifests, err := DiscoverManifests(filepath.Join("testdata", "catalog"))

	assert.NoError(t, err)
	// broken/ carries an unknown field and must be skipped, not fatal
	assert.Len(t, manifests, 1)
	assert.Equal(t, "spice-garden", manifests[0].Slug)
}
