package middleware

import (
	"strings"

	"biblio-backend/internal/config"
	"biblio-backend/internal/core/domain"
	"biblio-backend/internal/pkg/jwt"
	"biblio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("roles", claims.Roles)

		return c.Next()
	}
}

// Actor rebuilds the explicit actor identity from the validated claims.
// Zero value means the request was not authenticated.
func Actor(c *fiber.Ctx) domain.Actor {
	userID, _ := c.Locals("userID").(uint)
	email, _ := c.Locals("email").(string)
	rawRoles, _ := c.Locals("roles").([]string)

	roles := make([]domain.Role, 0, len(rawRoles))
	for _, r := range rawRoles {
		roles = append(roles, domain.Role(r))
	}

	return domain.Actor{
		ID:    userID,
		Email: email,
		Roles: roles,
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, ok := c.Locals("roles").([]string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, role := range roles {
			for _, allowed := range allowedRoles {
				if domain.Role(role) == allowed {
					return c.Next()
				}
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}
