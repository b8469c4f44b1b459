package controllers

import (
	constants "Sahada/constants/api"
	models "Sahada/models/postgres"
	"Sahada/responses"
	"Sahada/utils"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createSessionRequest struct {
	Description  string    `json:"description" binding:"omitempty,min=2,max=255"`
	City         string    `json:"city" binding:"required"`
	District     string    `json:"district" binding:"omitempty,min=2,max=255"`
	FacilityName string    `json:"facility_name" binding:"required,min=2,max=30"`
	EventDate    time.Time `json:"event_date" binding:"required"`
	PlayerLimit  *int      `json:"player_limit" binding:"omitempty,min=2,max=22"`
}

var (
	errAlreadyMember = errors.New("user is already in the session")
	errSessionFull   = errors.New("player limit exceeds")
)

func sessionIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("session_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return 0, false
	}
	return uint(id), true
}

// @Summary List sessions
// @Description Returns a page of session listings
// @Tags sessions
// @Produce json
// @Param limit query int false "Page size (1-50, default 10)"
// @Param offset query int false "Number of sessions to skip"
// @Success 200 {array} responses.SessionResponse
// @Failure 400 {object} object{error=string}
// @Router /sessions [get]
func GetAllSessions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))
		if err != nil || limit < 1 || limit > constants.MaxPageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}

		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset"})
			return
		}

		var sessions []models.Session
		result := db.Preload("Owner").
			Preload("Members.User").
			Order("id").
			Limit(limit).
			Offset(offset).
			Find(&sessions)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching sessions"})
			return
		}

		views := make([]responses.SessionResponse, len(sessions))
		for i := range sessions {
			views[i] = responses.NewSessionResponse(&sessions[i])
		}
		c.JSON(http.StatusOK, views)
	}
}

// @Summary Create a new session
// @Description Creates a session listing; the caller becomes owner and first member
// @Tags sessions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param request body createSessionRequest true "Session data"
// @Success 201 {object} responses.SessionResponse
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /sessions [post]
func CreateSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.CurrentUser(db, c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate user."})
			return
		}

		var request createSessionRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !models.City(request.City).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown city."})
			return
		}

		if !request.EventDate.After(time.Now()) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Event date can not be past."})
			return
		}

		session := models.Session{
			Description:  request.Description,
			City:         request.City,
			District:     request.District,
			FacilityName: request.FacilityName,
			EventDate:    request.EventDate,
			PlayerLimit:  request.PlayerLimit,
			OwnerID:      user.ID,
		}

		// The owner's membership row is written in the same transaction as
		// the session itself
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&session).Error; err != nil {
				return err
			}
			member := models.SessionMember{SessionID: session.ID, UserID: user.ID}
			return tx.Create(&member).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating session"})
			return
		}

		session.Owner = *user
		session.Members = []models.SessionMember{{SessionID: session.ID, UserID: user.ID, User: *user}}
		c.JSON(http.StatusCreated, responses.NewSessionResponse(&session))
	}
}

// @Summary Delete a session
// @Description Deletes a session and its memberships; owner only
// @Tags sessions
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param session_id path int true "Session id"
// @Success 204 "No Content"
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /sessions/{session_id} [delete]
func DeleteSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.CurrentUser(db, c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate user."})
			return
		}

		sessionID, ok := sessionIDParam(c)
		if !ok {
			return
		}

		session, err := utils.CheckSessionExists(db, sessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Session not found."})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching session"})
			}
			return
		}

		if session.OwnerID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "User is not the owner of this session."})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("session_id = ?", session.ID).Delete(&models.SessionMember{}).Error; err != nil {
				return err
			}
			return tx.Delete(session).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting session"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary Join a session
// @Description Adds the caller to the session's member list
// @Tags sessions
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param session_id path int true "Session id"
// @Success 201 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /sessions/{session_id} [post]
func JoinSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.CurrentUser(db, c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate user."})
			return
		}

		sessionID, ok := sessionIDParam(c)
		if !ok {
			return
		}

		session, err := utils.CheckSessionExists(db, sessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Session not found."})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching session"})
			}
			return
		}

		if time.Now().After(session.EventDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Can not join the session as it has passed."})
			return
		}

		// Membership and capacity checks run in the same transaction as the
		// insert so two racing joins settle on the store's isolation
		err = db.Transaction(func(tx *gorm.DB) error {
			isMember, err := utils.IsSessionMember(tx, session.ID, user.ID)
			if err != nil {
				return err
			}
			if isMember {
				return errAlreadyMember
			}

			if session.PlayerLimit != nil {
				count, err := utils.CountSessionMembers(tx, session.ID)
				if err != nil {
					return err
				}
				if count >= int64(*session.PlayerLimit) {
					return errSessionFull
				}
			}

			member := models.SessionMember{SessionID: session.ID, UserID: user.ID}
			return tx.Create(&member).Error
		})

		switch {
		case errors.Is(err, errAlreadyMember):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User is already in the session."})
		case errors.Is(err, errSessionFull):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Player limit exceeds."})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding user to session"})
		default:
			c.JSON(http.StatusCreated, gin.H{"message": "Joined session successfully"})
		}
	}
}

// @Summary Leave a session
// @Description Removes the caller from the session's member list; the owner can not leave
// @Tags sessions
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param session_id path int true "Session id"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /sessions/{session_id} [put]
func LeaveSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.CurrentUser(db, c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate user."})
			return
		}

		sessionID, ok := sessionIDParam(c)
		if !ok {
			return
		}

		session, err := utils.CheckSessionExists(db, sessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Session not found."})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching session"})
			}
			return
		}

		if session.OwnerID == user.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User can not be removed from his/her own session."})
			return
		}

		isMember, err := utils.IsSessionMember(db, session.ID, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking membership"})
			return
		}
		if !isMember {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User is not in the session."})
			return
		}

		result := db.Where("session_id = ? AND user_id = ?", session.ID, user.ID).
			Delete(&models.SessionMember{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing user from session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Left session successfully"})
	}
}
