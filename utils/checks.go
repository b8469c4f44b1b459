package utils

import (
	"errors"

	models "Sahada/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentUser resolves the user id stored on the context by the auth
// middleware to a full user record.
func CurrentUser(db *gorm.DB, c *gin.Context) (*models.User, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return nil, errors.New("no authenticated user on context")
	}

	userID, ok := value.(uint)
	if !ok {
		return nil, errors.New("invalid user id on context")
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckSessionExists fetches a session by id, ErrRecordNotFound aside.
func CheckSessionExists(db *gorm.DB, sessionID uint) (*models.Session, error) {
	var session models.Session
	result := db.Where("id = ?", sessionID).First(&session)

	if result.Error != nil {
		return nil, result.Error
	}

	return &session, nil
}

func IsSessionMember(db *gorm.DB, sessionID uint, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.SessionMember{}).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CountSessionMembers returns the current member count, owner included.
func CountSessionMembers(db *gorm.DB, sessionID uint) (int64, error) {
	var count int64
	err := db.Model(&models.SessionMember{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error

	if err != nil {
		return 0, err
	}

	return count, nil
}
