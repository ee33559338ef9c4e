package utils

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func GenerateJWTToken(userID uint, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseUserIDFromToken accepts "Bearer <token>" or a bare token.
func ParseUserIDFromToken(header, secret string) (uint, error) {
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tokenString == "" {
		return 0, UnauthorizedError("Not authorized, no token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, UnauthorizedError("Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, UnauthorizedError("Not authorized, token failed")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, UnauthorizedError("Invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return 0, UnauthorizedError("Invalid user ID in token")
	}

	return uint(userIDFloat), nil
}
