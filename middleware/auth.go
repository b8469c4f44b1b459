package middleware

import (
	constants "Sahada/constants/api"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the username travels in the registered
// Subject field, the numeric user id in a private claim.
type Claims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// CreateToken issues a signed access token for the given user.
func CreateToken(username string, userID uint) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(constants.TokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// DecodeToken verifies the signature and expiry of a raw token string and
// returns its claims.
func DecodeToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// JWTDecoder extracts the bearer token from the Authorization header and
// decodes it.
func JWTDecoder(c *gin.Context) (*Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, errors.New("missing Authorization header")
	}

	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return nil, errors.New("Authorization header is not a bearer token")
	}

	return DecodeToken(tokenString)
}

// AuthRequired guards a route group: requests without a valid bearer token
// are rejected with 401, valid ones get the token identity stored on the
// context for the handlers.
func AuthRequired(c *gin.Context) {
	claims, err := JWTDecoder(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate user."})
		return
	}

	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Subject)
	c.Next()
}
