package rest

import (
	"errors"

	"github.com/dmitrijs2005/gophbudget/internal/common"
	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type profileResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

func (s *Server) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgBadBody)
	}

	res, err := s.services.Users.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return resourceError(err, "", "User already exists.")
	}

	s.logger.Info(c.UserContext(), "Registered", "user_id", res.User.ID)

	return c.Status(fiber.StatusCreated).JSON(authResponse{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    userResponse{ID: res.User.ID, Email: res.User.Email, Name: res.User.Name},
	})
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgBadBody)
	}

	res, err := s.services.Users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return fiber.NewError(fiber.StatusUnauthorized, msgBadCredentials)
		}
		return err
	}

	return c.JSON(authResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    userResponse{ID: res.User.ID, Email: res.User.Email},
	})
}

func (s *Server) profile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := s.services.Users.Profile(c.UserContext(), userID)
	if err != nil {
		return resourceError(err, "User not found.", "")
	}

	return c.JSON(profileResponse{
		Message: "Protected route access confirmed.",
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
	})
}
