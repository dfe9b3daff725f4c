package restaurants

import (
	"encoding/json"
	"errors"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InitCatalog discovers restaurant manifests from the catalog directory,
// syncs them to the database, and returns the populated registry.
//
// Non-fatal: logs warnings but does not fail if individual manifests have
// issues.
func InitCatalog(db *gorm.DB, catalogDir string) (*Registry, error) {
	registry, err := LoadRegistry(catalogDir)
	if err != nil {
		return nil, err
	}

	log.Printf("Discovered %d restaurant(s) from %s", registry.Count(), catalogDir)

	for _, m := range registry.List() {
		if err := syncRestaurantToDB(db, m); err != nil {
			log.Printf("Warning: failed to sync restaurant %s to database: %v", m.Slug, err)
			continue
		}
		log.Printf("Synced restaurant to database: %s", m.Slug)
	}

	return registry, nil
}

// syncRestaurantToDB persists or updates a restaurant's catalog entry.
// Uses an upsert pattern: creates if new, updates if already exists.
func syncRestaurantToDB(db *gorm.DB, m *Manifest) error {
	menuJSON, err := json.Marshal(m.Menu)
	if err != nil {
		return err
	}

	var existing Restaurant
	result := db.Where("slug = ?", m.Slug).First(&existing)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		restaurant := Restaurant{
			Slug:        m.Slug,
			Name:        m.Name,
			Description: m.Description,
			Cuisine:     m.Cuisine,
			Address:     m.Address,
			Rating:      m.Rating,
			PriceForTwo: m.PriceForTwo,
			Image:       m.Image,
			Menu:        datatypes.JSON(menuJSON),
		}
		return db.Create(&restaurant).Error
	} else if result.Error != nil {
		return result.Error
	}

	updates := map[string]interface{}{
		"name":          m.Name,
		"description":   m.Description,
		"cuisine":       m.Cuisine,
		"address":       m.Address,
		"rating":        m.Rating,
		"price_for_two": m.PriceForTwo,
		"image":         m.Image,
		"menu":          datatypes.JSON(menuJSON),
	}

	return db.Model(&existing).Updates(updates).Error
}
