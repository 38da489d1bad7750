package middleware

import (
	"errors"
	"strings"

	"equiptrack/config"
	"equiptrack/internal/auth"
	"equiptrack/internal/database"
	"equiptrack/internal/events"
	"equiptrack/internal/logger"
	. "equiptrack/internal/models"
	"equiptrack/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

type Middleware struct {
	db       database.DB
	eventBus *events.EventBus
	config   config.Config
	userRepo repositories.UserRepository
	log      logger.Logger
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
	userRepo repositories.UserRepository,
) Middleware {
	return Middleware{
		db:       db,
		eventBus: eventBus,
		config:   config,
		userRepo: userRepo,
		log:      logger.New("middleware"),
	}
}

// RequireAuth validates the bearer token and loads the requesting user
// into locals. Missing or invalid tokens are a 401.
func (m Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := m.log.Function("RequireAuth")

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "authorization header is required"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "invalid token format"})
		}

		claims, err := auth.ParseToken([]byte(m.config.AuthJWTSecret), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "invalid or expired token"})
		}

		user, err := m.userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).
					JSON(fiber.Map{"message": "unknown user"})
			}
			log.Er("failed to load user for token", err, "userID", claims.UserID)
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"message": "failed to authenticate"})
		}

		c.Locals("user", *user)
		return c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m Middleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(User)
		if !ok || !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).
				JSON(fiber.Map{"message": "admin access required"})
		}
		return c.Next()
	}
}
