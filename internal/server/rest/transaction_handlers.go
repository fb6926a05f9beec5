package rest

import (
	"github.com/dmitrijs2005/gophbudget/internal/server/models"
	"github.com/dmitrijs2005/gophbudget/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const msgTransactionNotFound = "Transaction not found or does not belong to user."

// transactionRequest accepts amount as a JSON number or a numeric string.
type transactionRequest struct {
	CategoryID  *string          `json:"categoryId"`
	Type        models.EntryType `json:"type"`
	Amount      *decimal.Decimal `json:"amount"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
}

func (r transactionRequest) input() services.TransactionInput {
	return services.TransactionInput{
		CategoryID:  r.CategoryID,
		Type:        r.Type,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date,
	}
}

func (s *Server) listTransactions(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	list, err := s.services.Transactions.List(c.UserContext(), userID, services.TransactionQuery{
		Month:      c.Query("month"),
		Type:       c.Query("type"),
		CategoryID: c.Query("categoryId"),
	})
	if err != nil {
		return err
	}

	return c.JSON(list)
}

func (s *Server) getTransaction(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	t, err := s.services.Transactions.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return resourceError(err, msgTransactionNotFound, "")
	}

	return c.JSON(t)
}

func (s *Server) createTransaction(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req transactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgBadBody)
	}

	created, err := s.services.Transactions.Create(c.UserContext(), userID, req.input())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) updateTransaction(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req transactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgBadBody)
	}

	updated, err := s.services.Transactions.Update(c.UserContext(), userID, c.Params("id"), req.input())
	if err != nil {
		return resourceError(err, msgTransactionNotFound, "")
	}

	return c.JSON(updated)
}

func (s *Server) deleteTransaction(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := s.services.Transactions.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return resourceError(err, msgTransactionNotFound, "")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
