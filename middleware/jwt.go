package middleware

import (
	"fmt"
	"strings"
	"time"

	"microcourses/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a JWT token for the user
func GenerateJWT(cfg *config.Config, userID uint, name, role, email string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"name":   name,
		"role":   role,
		"email":  email,
		"iat":    time.Now().Unix(),                     // issued at
		"exp":    time.Now().Add(24 * time.Hour).Unix(), // expiry 24h
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTKey))
}

// JWT returns a middleware that requires a valid bearer token and stores
// userId and role in the request context.
func JWT(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
		}

		claims, err := parseToken(cfg, authHeader[len("Bearer "):])
		if err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
		}

		c.Locals("userId", uint(claims["userId"].(float64)))
		if role, ok := claims["role"].(string); ok {
			c.Locals("role", role)
		}
		return c.Next()
	}
}

// OptionalJWT attaches userId/role when a valid token is present and
// continues unauthenticated otherwise. Token errors are ignored; the course
// catalog uses this to show enrollment state to signed-in browsers.
func OptionalJWT(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Next()
		}

		claims, err := parseToken(cfg, authHeader[len("Bearer "):])
		if err != nil {
			return c.Next()
		}

		c.Locals("userId", uint(claims["userId"].(float64)))
		if role, ok := claims["role"].(string); ok {
			c.Locals("role", role)
		}
		return c.Next()
	}
}

// RequireRole returns a middleware allowing only the listed roles. Must run
// after JWT.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}

func parseToken(cfg *config.Config, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return nil, fmt.Errorf("invalid token payload")
	}
	return claims, nil
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
