package services

import (
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken generates a JWT access token for the user
func GenerateToken(userID string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(utils.JWTExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     expirationTime.Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// GenerateRefreshToken generates a longer-lived refresh token for the user
func GenerateRefreshToken(userID string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(utils.RefreshTokenExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    "refresh",
		"exp":     expirationTime.Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}
