package controllers

import (
	"Sahada/middleware"
	models "Sahada/models/postgres"
	"Sahada/responses"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type registerRequest struct {
	Username    string `json:"username" binding:"required,min=2,max=20"`
	Name        string `json:"name" binding:"required,min=2,max=30"`
	Surname     string `json:"surname" binding:"required,min=2,max=30"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required,min=8,max=12"`
	Password    string `json:"password" binding:"required,min=5"`
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// @Summary Register a new user
// @Description Creates a user account; username, email and phone number must be unique
// @Tags users
// @Accept json
// @Produce json
// @Param request body registerRequest true "New user data"
// @Success 201 {object} object{message=string,user=object{id=integer,username=string}}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /users/register [post]
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request registerRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Check collisions up front for a clear message; the unique indexes
		// still backstop the race below
		var existing models.User
		err := db.Where("username = ? OR email = ? OR phone_number = ?",
			request.Username, request.Email, request.PhoneNumber).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists."})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking existing users"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
			return
		}

		user := models.User{
			Username:     request.Username,
			Name:         request.Name,
			Surname:      request.Surname,
			Email:        request.Email,
			PhoneNumber:  request.PhoneNumber,
			PasswordHash: string(hash),
		}

		if err := db.Create(&user).Error; err != nil {
			if isUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "User already exists."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"user": gin.H{
				"id":       user.ID,
				"username": user.Username,
			},
		})
	}
}

// @Summary Log in with username and password
// @Description Returns a time-limited bearer token on valid credentials
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} object{access_token=string,token_type=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /users/login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		// Minimum input sanitizing
		if strings.Trim(username, " ") == "" || strings.Trim(password, " ") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		var user models.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate user."})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate user."})
			return
		}

		token, err := middleware.CreateToken(user.Username, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "bearer",
		})
	}
}

// @Summary Get a user's public profile
// @Description Returns the profile of a user plus the sessions they own
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} responses.UserResponse
// @Failure 404 {object} object{error=string}
// @Router /users/{username} [get]
func GetUserPublicInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		var user models.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
			return
		}

		var ownedSessions []models.Session
		result := db.Where("owner_id = ?", user.ID).
			Preload("Members.User").
			Find(&ownedSessions)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching owned sessions"})
			return
		}

		c.JSON(http.StatusOK, responses.NewUserResponse(&user, ownedSessions))
	}
}
