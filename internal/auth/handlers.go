package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/foodoo/foodoo/internal/config"
	"github.com/foodoo/foodoo/internal/models"
	"github.com/foodoo/foodoo/internal/token"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const bcryptCost = 10

// DateOfBirth holds the day/month/year components collected at signup.
type DateOfBirth struct {
	Day   string `json:"day"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

type signupRequest struct {
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	EmailOrPhone string       `json:"emailOrPhone"`
	Password     string       `json:"password"`
	DOB          *DateOfBirth `json:"dob"`
	Gender       string       `json:"gender"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRoutes mounts the auth endpoints on the given group.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, tm *token.Manager, cfg *config.Config) {
	rg.POST("/signup", HandleSignup(db, tm))
	rg.POST("/login", HandleLogin(db, tm))
	rg.GET("/google", HandleGoogleLogin)
	rg.GET("/google/callback", HandleGoogleCallback(db, tm, cfg))
}

// HandleSignup creates a user from email+password credentials and returns a
// freshly issued token. A duplicate email is a conflict, not a server error.
func HandleSignup(db *gorm.DB, tm *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if req.FirstName == "" || req.EmailOrPhone == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		var existing models.User
		err := db.Where("email = ?", req.EmailOrPhone).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists with this email"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Signup lookup error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			log.Printf("Password hash error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
			return
		}

		user := models.User{
			Email:        &req.EmailOrPhone,
			PasswordHash: string(hash),
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Name:         models.DisplayName(req.FirstName, req.LastName),
			Gender:       req.Gender,
		}
		if req.DOB != nil {
			if dobJSON, err := json.Marshal(req.DOB); err == nil {
				user.DOB = datatypes.JSON(dobJSON)
			}
		}

		if err := db.Create(&user).Error; err != nil {
			// A concurrent signup can slip past the pre-check; the unique
			// index catches it and it is still a conflict, not a server error.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "User already exists with this email"})
				return
			}
			log.Printf("Signup create error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
			return
		}

		issued, err := tm.Issue(&user)
		if err != nil {
			log.Printf("Token issue error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"token":   issued,
			"user":    user.Public(),
		})
	}
}

// HandleLogin verifies email+password credentials and returns a freshly
// issued token. Unknown email, OAuth-only account, and hash mismatch are
// indistinguishable to the caller.
func HandleLogin(db *gorm.DB, tm *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			log.Printf("Login lookup error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		if !user.HasPassword() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login with Google"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		issued, err := tm.Issue(&user)
		if err != nil {
			log.Printf("Token issue error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   issued,
			"user":    user.Public(),
		})
	}
}

// HandleGoogleLogin initiates the Google OAuth flow
func HandleGoogleLogin(c *gin.Context) {
	// Gothic requires the "provider" query parameter
	q := c.Request.URL.Query()
	q.Add("provider", "google")
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// HandleGoogleCallback completes the OAuth flow, finds or creates the user by
// provider subject id, and redirects to the frontend carrying a freshly
// issued token as a query parameter.
func HandleGoogleCallback(db *gorm.DB, tm *token.Manager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Request.URL.Query()
		q.Add("provider", "google")
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			log.Printf("Auth error: %v", err)
			c.Redirect(http.StatusFound, cfg.FrontendURL+"/?error=auth_failed")
			return
		}

		user, err := upsertOAuthUser(db, gothUser.UserID, gothUser.Email, gothUser.Name, gothUser.AvatarURL, gothUser.AccessToken, gothUser.RefreshToken)
		if err != nil {
			log.Printf("OAuth user upsert error: %v", err)
			c.Redirect(http.StatusFound, cfg.FrontendURL+"/?error=auth_failed")
			return
		}

		issued, err := tm.Issue(user)
		if err != nil {
			log.Printf("Token issue error: %v", err)
			c.Redirect(http.StatusFound, cfg.FrontendURL+"/?error=auth_failed")
			return
		}

		log.Printf("User authenticated: %s (%s)", user.Name, gothUser.Email)
		c.Redirect(http.StatusFound, cfg.FrontendURL+"/?token="+issued)
	}
}

// upsertOAuthUser resolves a provider subject id to a local user, creating
// the user and identity rows on first login. An existing account with the
// same email is linked rather than duplicated.
func upsertOAuthUser(db *gorm.DB, providerUserID, email, name, avatarURL, accessToken, refreshToken string) (*models.User, error) {
	var identity models.AuthIdentity
	err := db.Where("provider = ? AND provider_user_id = ?", "google", providerUserID).First(&identity).Error
	if err == nil {
		var user models.User
		if err := db.First(&user, identity.UserID).Error; err != nil {
			return nil, err
		}
		updates := map[string]interface{}{"name": name}
		if user.Photo == "" && avatarURL != "" {
			updates["photo"] = avatarURL
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
		// Refresh the stored provider tokens through the struct so the
		// BeforeSave encryption hook runs; a map-based Update would write
		// them in plaintext.
		identity.AccessToken = accessToken
		identity.RefreshToken = refreshToken
		if err := db.Save(&identity).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// First login with this Google account: link to an existing user with the
	// same email, or create a fresh one (no password for the OAuth path).
	var user models.User
	err = db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email: &email,
			Name:  name,
			Photo: avatarURL,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	identity = models.AuthIdentity{
		UserID:         user.ID,
		Provider:       "google",
		ProviderUserID: providerUserID,
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
	}
	if err := db.Create(&identity).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
