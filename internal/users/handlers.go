package users

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/foodoo/foodoo/internal/auth"
	"github.com/foodoo/foodoo/internal/config"
	"github.com/foodoo/foodoo/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxPhotoSize = 5 << 20 // 5MB

var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// RegisterRoutes mounts the profile endpoints on the given (authenticated) group.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	rg.GET("/me", HandleGetMe(db))
	rg.PUT("/me", HandleUpdateMe(db, cfg))
}

// HandleGetMe returns the caller's own record. The identity comes from the
// verified token; a missing row means the user was removed after issuance.
func HandleGetMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			log.Printf("Error fetching user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// HandleUpdateMe applies a partial update of name/address/phone and an
// optional photo upload (multipart). Only the caller's own record is
// reachable through this path.
func HandleUpdateMe(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			log.Printf("Error fetching user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		updates := map[string]interface{}{}
		if name, ok := c.GetPostForm("name"); ok {
			updates["name"] = name
		}
		if address, ok := c.GetPostForm("address"); ok {
			updates["address"] = address
		}
		if phone, ok := c.GetPostForm("phone"); ok {
			updates["phone"] = phone
		}

		// Photo is set only when a new image arrived in this request
		if file, err := c.FormFile("photo"); err == nil && file != nil {
			photoPath, err := savePhoto(c, cfg.UploadDir, file)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["photo"] = photoPath
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				log.Printf("Error updating user %d: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
				return
			}
		}

		c.JSON(http.StatusOK, user)
	}
}

// savePhoto validates and stores an uploaded profile image, returning the
// public path recorded on the user.
func savePhoto(c *gin.Context, uploadDir string, file *multipart.FileHeader) (string, error) {
	if file.Size > maxPhotoSize {
		return "", fmt.Errorf("photo exceeds the 5MB limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPhotoExts[ext] {
		return "", fmt.Errorf("only image files are allowed")
	}

	filename := fmt.Sprintf("user-%s%s", uuid.New().String(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	return "/uploads/" + filename, nil
}
