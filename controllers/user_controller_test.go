package controllers

import (
	"Sahada/middleware"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/users/register", Register(db))
	router.POST("/users/login", Login(db))
	router.GET("/users/:username", GetUserPublicInfo(db))
	return router
}

func registerBody(username string) []byte {
	body, _ := json.Marshal(gin.H{
		"username":     username,
		"name":         "Ayse",
		"surname":      "Demir",
		"email":        username + "@example.com",
		"phone_number": "05551234567",
		"password":     "alicepw",
	})
	return body
}

func TestRegisterSuccess(t *testing.T) {
	db, mock := setupMockDB(t)
	router := setupUserRouter(db)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	req, _ := http.NewRequest("POST", "/users/register", bytes.NewReader(registerBody("ayse")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message string `json:"message"`
		User    struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "User created successfully", response.Message)
	assert.Equal(t, "ayse", response.User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	router := setupUserRouter(db)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(userRows(1, "ayse"))

	req, _ := http.NewRequest("POST", "/users/register", bytes.NewReader(registerBody("ayse")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterInvalidBody(t *testing.T) {
	db, _ := setupMockDB(t)
	router := setupUserRouter(db)

	cases := []gin.H{
		{"username": "a", "name": "Ayse", "surname": "Demir", "email": "a@x.com", "phone_number": "05551234567", "password": "alicepw"},
		{"username": "ayse", "name": "Ayse", "surname": "Demir", "email": "not-an-email", "phone_number": "05551234567", "password": "alicepw"},
		{"username": "ayse", "name": "Ayse", "surname": "Demir", "email": "a@x.com", "phone_number": "123", "password": "alicepw"},
		{"username": "ayse", "name": "Ayse", "surname": "Demir", "email": "a@x.com", "phone_number": "05551234567", "password": "pw"},
	}

	for _, body := range cases {
		raw, _ := json.Marshal(body)
		req, _ := http.NewRequest("POST", "/users/register", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestLoginSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db, mock := setupMockDB(t)
	router := setupUserRouter(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("alicepw"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow(1, "ayse", string(hash)))

	form := url.Values{"username": {"ayse"}, "password": {"alicepw"}}
	req, _ := http.NewRequest("POST", "/users/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "bearer", response.TokenType)

	claims, err := middleware.DecodeToken(response.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "ayse", claims.Subject)
	assert.Equal(t, uint(1), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(20*time.Minute), claims.ExpiresAt.Time, time.Minute)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db, mock := setupMockDB(t)
	router := setupUserRouter(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("alicepw"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow(1, "ayse", string(hash)))

	form := url.Values{"username": {"ayse"}, "password": {"wrong"}}
	req, _ := http.NewRequest("POST", "/users/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownUser(t *testing.T) {
	db, mock := setupMockDB(t)
	router := setupUserRouter(db)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	form := url.Values{"username": {"ghost"}, "password": {"whatever"}}
	req, _ := http.NewRequest("POST", "/users/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginEmptyFields(t *testing.T) {
	db, _ := setupMockDB(t)
	router := setupUserRouter(db)

	form := url.Values{"username": {""}, "password": {""}}
	req, _ := http.NewRequest("POST", "/users/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	router := setupUserRouter(db)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req, _ := http.NewRequest("GET", "/users/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserProfile(t *testing.T) {
	db, mock := setupMockDB(t)
	router := setupUserRouter(db)
	mock.MatchExpectationsInOrder(false)

	future := time.Now().Add(24 * time.Hour)
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(userRows(1, "ayse"))
	mock.ExpectQuery(`SELECT .* FROM "sessions"`).
		WillReturnRows(sessionRows(7, 1, future, nil))
	mock.ExpectQuery(`SELECT .* FROM "session_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "user_id"}).AddRow(7, 1))
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(userRows(1, "ayse"))

	req, _ := http.NewRequest("GET", "/users/ayse", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ayse", response["username"])
	assert.Equal(t, "Test User", response["name_and_surname"])
	sessions, ok := response["sessions"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, sessions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
