package rest

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophbudget/internal/common"
	"github.com/dmitrijs2005/gophbudget/internal/server/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// localsUserID is the fiber.Ctx locals key holding the authenticated user id.
const localsUserID = "user_id"

// UserIDFromContext returns the user id the authorization gate attached to ctx.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// authGate admits requests carrying a valid bearer token and records the
// token's user id for the handlers.
func (s *Server) authGate(c *fiber.Ctx) error {
	token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, msgNoToken)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, msgNoToken)
	}

	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		s.logger.Debug(c.UserContext(), "token rejected", "error", err)
		return fiber.NewError(fiber.StatusForbidden, msgInvalidToken)
	}

	c.Locals(localsUserID, userID)
	c.SetUserContext(context.WithValue(c.UserContext(), userIDKey, userID))

	return c.Next()
}

// currentUserID returns the id recorded by authGate.
func currentUserID(c *fiber.Ctx) (string, error) {
	if id, ok := c.Locals(localsUserID).(string); ok && id != "" {
		return id, nil
	}
	return "", common.ErrorNoUserID
}

// requestLogger logs one line per request. Errors from the chain are
// rendered here so the logged status is the one the client receives.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()

	if err := c.Next(); err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	args := []any{
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"latency", time.Since(start).String(),
	}
	if id, ok := c.Locals(localsUserID).(string); ok {
		args = append(args, "user_id", id)
	}
	s.logger.Info(c.UserContext(), "request", args...)

	return nil
}

func corsMiddleware(origin string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,HEAD,PUT,PATCH,POST,DELETE",
		AllowCredentials: origin != "*",
	})
}

// rateLimitAuth limits the auth routes to maxRequests per window per IP.
func rateLimitAuth(maxRequests int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests,
				"Too many login attempts from this IP, please try again later.")
		},
	})
}
