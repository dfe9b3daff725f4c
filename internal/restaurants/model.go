package restaurants

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Restaurant is the persisted form of a catalog manifest. The menu is kept
// as JSONB; the frontend consumes it whole.
type Restaurant struct {
	gorm.Model  `json:"-"`
	Slug        string         `gorm:"not null;uniqueIndex:idx_restaurants_slug,where:deleted_at IS NULL" json:"slug"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"not null;default:''" json:"description"`
	Cuisine     string         `gorm:"not null;default:''" json:"cuisine"`
	Address     string         `gorm:"not null;default:''" json:"address"`
	Rating      float64        `gorm:"not null;default:0" json:"rating"`
	PriceForTwo int            `gorm:"not null;default:0" json:"priceForTwo"`
	Image       string         `gorm:"not null;default:''" json:"image"`
	Menu        datatypes.JSON `gorm:"type:jsonb" json:"menu"`
}
