package restaurants

import (
	"log"
	"os"
	"path/filepath"
)

// DiscoverManifests scans the catalog directory for subdirectories containing
// restaurant.yaml files. Invalid manifests are logged and skipped (not fatal)
// so one broken file does not take down the whole catalog.
func DiscoverManifests(catalogDir string) ([]*Manifest, error) {
	var manifests []*Manifest

	entries, err := os.ReadDir(catalogDir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		manifestPath := filepath.Join(catalogDir, entry.Name(), "restaurant.yaml")

		if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
			continue
		}

		m, err := LoadManifest(manifestPath)
		if err != nil {
			log.Printf("Warning: failed to load restaurant from %s: %v", entry.Name(), err)
			continue
		}

		manifests = append(manifests, m)
	}

	return manifests, nil
}
