package middleware

import (
	"Treasury-System-Backend/domain"
	"Treasury-System-Backend/internal/api/presenters"
	"Treasury-System-Backend/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		SuperuserMiddleware() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenNotFound)
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader || tokenStr == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
		}

		adminID, username, isSuperuser, err := jwtService.GetAdminByToken(tokenStr)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("admin_id", adminID)
		c.Locals("username", username)
		c.Locals("is_superuser", isSuperuser)
		return c.Next()
	}
}

func (m *middleware) SuperuserMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isSuperuser, ok := c.Locals("is_superuser").(bool)
		if !ok || !isSuperuser {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageSuperuserOnly, domain.ErrSuperuserRequired)
		}
		return c.Next()
	}
}
