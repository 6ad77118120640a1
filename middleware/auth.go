package middleware

import (
	"strings"

	"auto-repair-site/logger"
	"auto-repair-site/types"
	"auto-repair-site/utils"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth guards an endpoint with a local admin bearer token. Claims
// are stored in c.Locals("user") for downstream handlers.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Success: false,
				Message: "Authorization token required",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Success: false,
				Message: "Invalid authorization header format",
			})
		}

		claims, err := utils.ParseToken(tokenParts[1])
		if err != nil {
			logger.Error("Rejected admin token", err)
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Success: false,
				Message: "Invalid or expired token",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}
