package rest

import (
	"github.com/dmitrijs2005/gophbudget/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type budgetRequest struct {
	CategoryID string           `json:"categoryId"`
	MonthYear  string           `json:"monthYear"`
	Amount     *decimal.Decimal `json:"amount"`
}

func (s *Server) listBudgets(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	list, err := s.services.Budgets.ListByMonth(c.UserContext(), userID, c.Query("month"))
	if err != nil {
		return err
	}

	return c.JSON(list)
}

// upsertBudget answers 200 whether the budget was created or replaced.
func (s *Server) upsertBudget(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req budgetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgBadBody)
	}

	b, err := s.services.Budgets.Upsert(c.UserContext(), userID, services.BudgetInput{
		CategoryID: req.CategoryID,
		MonthYear:  req.MonthYear,
		Amount:     req.Amount,
	})
	if err != nil {
		return err
	}

	return c.JSON(b)
}

func (s *Server) deleteBudget(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := s.services.Budgets.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return resourceError(err, "Budget not found.", "")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
