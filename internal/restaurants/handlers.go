package restaurants

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes mounts the public, read-only catalog endpoints.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	rg.GET("", HandleList(db))
	rg.GET("/:slug", HandleGet(db))
}

// HandleList returns the full restaurant catalog
func HandleList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var out []Restaurant
		if err := db.Order("name ASC").Find(&out).Error; err != nil {
			log.Printf("Error listing restaurants: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching restaurants"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// HandleGet returns one restaurant by slug
func HandleGet(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var restaurant Restaurant
		err := db.Where("slug = ?", c.Param("slug")).First(&restaurant).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
				return
			}
			log.Printf("Error fetching restaurant: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching restaurant"})
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}
