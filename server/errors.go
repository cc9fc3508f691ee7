package server

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// errorHandler is the fiber-level fallback for errors that escape handlers.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
	}

	return mapDomainError(c, err)
}

// mapDomainError translates go-errors categories into HTTP statuses with a
// field-level payload where available.
func mapDomainError(c *fiber.Ctx, err error) error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		status := fiber.StatusInternalServerError
		switch richErr.Category {
		case goerrors.CategoryValidation:
			status = fiber.StatusBadRequest
		case goerrors.CategoryAuth:
			status = fiber.StatusUnauthorized
		case goerrors.CategoryNotFound:
			status = fiber.StatusNotFound
		case goerrors.CategoryConflict:
			status = fiber.StatusConflict
		}

		return c.Status(status).JSON(fiber.Map{
			"detail": richErr.Message,
			"code":   richErr.TextCode,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"detail": "internal server error",
	})
}

// validationError renders ozzo field errors as a field -> message map, the
// same shape clients get for any synchronous validation failure.
func validationError(c *fiber.Ctx, err error) error {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		out := make(map[string]string, len(fieldErrs))
		for field, ferr := range fieldErrs {
			out[field] = ferr.Error()
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": out})
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": msg})
}
