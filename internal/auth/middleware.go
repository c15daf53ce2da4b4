package auth

import (
	"fmt"
	"strings"

	"dairyline-backend/internal/config"
	"dairyline-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxActorTypeKey = "actor_type"
	CtxActorIDKey   = "actor_id"
	CtxActorNameKey = "actor_name"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header missing")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization must be 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Could not parse token claims")
		}

		c.Locals(CtxActorTypeKey, claims.ActorType)
		c.Locals(CtxActorIDKey, claims.ActorID)
		c.Locals(CtxActorNameKey, claims.Name)

		return c.Next()
	}
}

// RequireActor restricts a route group to the given actor types.
func RequireActor(allowed ...models.ActorType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorType, ok := c.Locals(CtxActorTypeKey).(models.ActorType)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Actor information missing")
		}

		for _, a := range allowed {
			if a == actorType {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "You are not allowed to perform this action")
	}
}

// Actor returns the authenticated actor from the request context.
func Actor(c *fiber.Ctx) (models.ActorType, uint, string, error) {
	actorType, ok1 := c.Locals(CtxActorTypeKey).(models.ActorType)
	actorID, ok2 := c.Locals(CtxActorIDKey).(uint)
	name, _ := c.Locals(CtxActorNameKey).(string)
	if !ok1 || !ok2 {
		return "", 0, "", fiber.NewError(fiber.StatusForbidden, "Actor information missing")
	}
	return actorType, actorID, name, nil
}

// RequireCustomerSelf ensures a customer token only reaches its own records;
// admins and vendors pass through.
func RequireCustomerSelf(c *fiber.Ctx, customerID uint) error {
	actorType, actorID, _, err := Actor(c)
	if err != nil {
		return err
	}
	if actorType == models.ActorCustomer && actorID != customerID {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}
	return nil
}
