package rest

import (
	"strconv"

	"github.com/dmitrijs2005/gophbudget/internal/common"
	"github.com/dmitrijs2005/gophbudget/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) summary(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	res, err := s.services.Analytics.Summary(c.UserContext(), userID, c.Query("month"))
	if err != nil {
		return err
	}

	return c.JSON(res)
}

func (s *Server) breakdown(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	res, err := s.services.Analytics.Breakdown(c.UserContext(), userID, c.Query("month"))
	if err != nil {
		return err
	}

	return c.JSON(res)
}

func (s *Server) trend(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	days := services.DefaultTrendDays
	if raw := c.Query("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			return common.ErrInvalidDays
		}
	}

	res, err := s.services.Analytics.Trend(c.UserContext(), userID, days)
	if err != nil {
		return err
	}

	return c.JSON(res)
}

func (s *Server) budgetHealth(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	res, err := s.services.Analytics.BudgetHealth(c.UserContext(), userID, c.Query("month"))
	if err != nil {
		return err
	}

	return c.JSON(res)
}
