package middleware

import (
	"log"
	"strings"

	"souq/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the signed session cookie set at login.
const SessionCookie = "session"

// SessionAuth is a Fiber middleware that requires a valid session token.
// The token is read from the session cookie, or from an Authorization
// Bearer header for non-browser clients, and its {user_id, name, role}
// claims are stored in the request locals for downstream handlers.
func SessionAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookie)
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Please log in to continue",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("Session validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Session expired or invalid, please log in again",
			})
		}

		c.Locals("user_id", claims["user_id"])
		c.Locals("name", claims["name"])
		c.Locals("role", claims["role"])

		return c.Next()
	}
}

// RequireRole gates a route on the session role established by SessionAuth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if got, _ := c.Locals("role").(string); got != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "This action requires a " + role + " account",
			})
		}
		return c.Next()
	}
}

// SessionUserID returns the user id of the authenticated session, or "".
func SessionUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
