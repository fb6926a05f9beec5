package rest

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn(ctx, "database ping failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(errorResponse{Status: "error", Message: "Database unavailable."})
	}

	return c.JSON(healthResponse{Status: "ok"})
}
