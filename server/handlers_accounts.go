package server

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-accounts"
)

// RegisterRequest is the self-registration payload.
type RegisterRequest struct {
	Email           string `form:"email" json:"email"`
	FirstName       string `form:"first_name" json:"first_name"`
	LastName        string `form:"last_name" json:"last_name"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.FirstName, validation.Length(0, 50)),
		validation.Field(&r.LastName, validation.Length(0, 50)),
		validation.Field(&r.Password, validation.Required),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(stringEquals(r.Password, "the two password fields didn't match")),
		),
	)
}

// Register creates a standard account and sends the welcome notification.
func (s *Server) Register(c *fiber.Ctx) error {
	payload := new(RegisterRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "invalid payload")
	}

	if err := payload.Validate(); err != nil {
		return validationError(c, err)
	}

	account, err := s.mgr.CreateStandard(c.Context(), payload.Email, payload.Password,
		accounts.WithFirstName(payload.FirstName),
		accounts.WithLastName(payload.LastName),
	)
	if err != nil {
		return mapDomainError(c, err)
	}

	if err := s.mail.Send(c.Context(), account.Email, "Welcome",
		fmt.Sprintf("Your account %s has been created.", account.Email)); err != nil {
		// Mail is best effort; the account exists either way.
		s.logger.Error("welcome mail failed", "error", err)
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

func stringEquals(str, msg string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}
