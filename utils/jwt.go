package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 12 * time.Hour
)

func secretKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "kedai-dev-secret"
	}
	return []byte(secret)
}

func signToken(role string, userID uint, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_role": role,
		"id":        userID,
		"exp":       time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(secretKey())
}

// GenerateTokens issues the access/refresh pair for a user.
func GenerateTokens(role string, userID uint) (string, string, error) {
	access, err := signToken(role, userID, accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := signToken(role, userID, refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("error parsing token: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("invalid or missing expiration claim")
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, errors.New("token has expired")
	}

	return claims, nil
}

// RefreshTokens validates a refresh token and issues a fresh pair with the
// same identity claims.
func RefreshTokens(oldRefreshToken string) (string, string, error) {
	claims, err := ValidateToken(oldRefreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %v", err)
	}

	role, _ := claims["user_role"].(string)
	idFloat, ok := claims["id"].(float64)
	if !ok {
		return "", "", errors.New("id not found in refresh token")
	}

	return GenerateTokens(role, uint(idFloat))
}
