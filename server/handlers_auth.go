package server

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
)

// LoginRequest is the token-obtain payload.
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// Login verifies credentials and returns an access/refresh pair.
func (s *Server) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "invalid payload")
	}

	if err := payload.Validate(); err != nil {
		return validationError(c, err)
	}

	pair, err := s.auther.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		// Uniform signal: no distinction between unknown account, bad
		// password, and inactive.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "no active account found with the given credentials",
		})
	}

	return c.JSON(pair)
}

// RefreshRequest carries the refresh token.
type RefreshRequest struct {
	Refresh string `form:"refresh" json:"refresh"`
}

// Refresh exchanges a refresh token for a new access token.
func (s *Server) Refresh(c *fiber.Ctx) error {
	payload := new(RefreshRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "invalid payload")
	}

	if payload.Refresh == "" {
		return badRequest(c, "refresh token is required")
	}

	access, err := s.auther.Refresh(payload.Refresh)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "token is invalid or expired",
		})
	}

	return c.JSON(fiber.Map{"access": access})
}

// VerifyRequest carries any issued token.
type VerifyRequest struct {
	Token string `form:"token" json:"token"`
}

// Verify checks a token's signature and expiry without issuing anything.
func (s *Server) Verify(c *fiber.Ctx) error {
	payload := new(VerifyRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "invalid payload")
	}

	if payload.Token == "" {
		return badRequest(c, "token is required")
	}

	if _, err := s.auther.Verify(payload.Token); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "token is invalid or expired",
		})
	}

	return c.JSON(fiber.Map{})
}
