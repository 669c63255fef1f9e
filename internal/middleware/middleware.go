package middleware

import (
	"strings"

	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/internal/api/presenters"
	"Recipe-Box-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(userService user.UserService) fiber.Handler
	}

	middleware struct {
		allowedOrigin string
	}
)

func NewMiddleware(allowedOrigin string) Middleware {
	return &middleware{allowedOrigin: allowedOrigin}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	origin := m.allowedOrigin
	if origin == "" {
		origin = "*"
	}

	return cors.New(cors.Config{
		AllowOrigins: origin,
		// fiber refuses credentials together with a wildcard origin
		AllowCredentials: origin != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

// AuthMiddleware resolves the bearer token to a user and stores its id and
// email in the request locals.
func (m *middleware) AuthMiddleware(userService user.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c, domain.ErrTokenNotFound)
		}

		current, err := userService.CurrentUser(c.Context(), token)
		if err != nil {
			if presenters.StatusCode(err) == fiber.StatusUnauthorized {
				return unauthorized(c, err)
			}
			return presenters.HandleError(c, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", current.ID.String())
		c.Locals("email", current.Email)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *fiber.Ctx, err error) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
}
