package rest

import (
	"github.com/dmitrijs2005/gophbudget/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

const (
	msgCategoryNotFound = "Category not found."
	msgCategoryExists   = "Category with this name already exists."
)

type categoryRequest struct {
	Name string           `json:"name"`
	Type models.EntryType `json:"type"`
}

func (s *Server) listCategories(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	list, err := s.services.Categories.List(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(list)
}

func (s *Server) createCategory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgBadBody)
	}

	created, err := s.services.Categories.Create(c.UserContext(), userID, req.Name, req.Type)
	if err != nil {
		return resourceError(err, "", msgCategoryExists)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) updateCategory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgBadBody)
	}

	updated, err := s.services.Categories.Update(c.UserContext(), userID, c.Params("id"), req.Name, req.Type)
	if err != nil {
		return resourceError(err, msgCategoryNotFound, msgCategoryExists)
	}

	return c.JSON(updated)
}

func (s *Server) deleteCategory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := s.services.Categories.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return resourceError(err, msgCategoryNotFound, "")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
