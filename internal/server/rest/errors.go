package rest

import (
	"errors"

	"github.com/dmitrijs2005/gophbudget/internal/common"
	"github.com/gofiber/fiber/v2"
)

// Client-facing messages.
const (
	msgNoToken        = "Access denied. No token provided."
	msgInvalidToken   = "Invalid or expired token."
	msgAuthRequired   = "Authentication required."
	msgBadCredentials = "Invalid credentials."
	msgBadBody        = "Invalid request body."
	msgInternal       = "Internal Server Error"
)

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// errorHandler renders every error as {"status":"error","message":...}.
// Unclassified errors become a 500 whose cause is logged but not returned.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code, msg := classify(err)

	if code >= fiber.StatusInternalServerError {
		s.logger.Error(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(errorResponse{Status: "error", Message: msg})
}

func classify(err error) (int, string) {
	var (
		ve *common.ValidationError
		fe *fiber.Error
	)

	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, ve.Message
	case errors.As(err, &fe):
		if fe.Code >= fiber.StatusInternalServerError {
			return fe.Code, msgInternal
		}
		return fe.Code, fe.Message
	case errors.Is(err, common.ErrorNoUserID):
		return fiber.StatusUnauthorized, msgAuthRequired
	case errors.Is(err, common.ErrorUnauthorized):
		return fiber.StatusUnauthorized, msgBadCredentials
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return fiber.StatusForbidden, msgInvalidToken
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound, "Resource not found."
	case errors.Is(err, common.ErrorAlreadyExists):
		return fiber.StatusConflict, "Resource already exists."
	}

	return fiber.StatusInternalServerError, msgInternal
}

// resourceError names the resource in not-found and conflict responses and
// passes every other error through.
func resourceError(err error, notFound, conflict string) error {
	switch {
	case errors.Is(err, common.ErrorNotFound) && notFound != "":
		return fiber.NewError(fiber.StatusNotFound, notFound)
	case errors.Is(err, common.ErrorAlreadyExists) && conflict != "":
		return fiber.NewError(fiber.StatusConflict, conflict)
	}
	return err
}
