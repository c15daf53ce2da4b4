package auth

import (
	"time"

	"dairyline-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type JWTCustomClaims struct {
	ActorType models.ActorType `json:"actor_type"`
	ActorID   uint             `json:"actor_id"`
	Name      string           `json:"name"`
	jwt.RegisteredClaims
}

// Admin tokens are short-lived; vendor and customer sessions last a day.
const (
	AdminTokenTTL   = 1 * time.Hour
	DefaultTokenTTL = 24 * time.Hour
)

func GenerateToken(secret string, actorType models.ActorType, actorID uint, name string, ttl time.Duration) (string, error) {
	claims := &JWTCustomClaims{
		ActorType: actorType,
		ActorID:   actorID,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
