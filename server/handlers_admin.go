package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/goliatone/go-accounts/admin"
)

// AdminList serves the operator list view: substring search over the
// searchable fields, staff/active filters combined with AND, email ordering
// by default.
func (s *Server) AdminList(c *fiber.Ctx) error {
	opts := admin.ListOptions{
		Search:  c.Query("q"),
		OrderBy: c.Query("order_by"),
		Limit:   c.QueryInt("limit"),
		Offset:  c.QueryInt("offset"),
	}

	filters := map[string]string{}
	for _, field := range s.lister.Resource().FilterFields() {
		if v := c.Query(field); v != "" {
			filters[field] = v
		}
	}
	if len(filters) > 0 {
		opts.Filters = filters
	}

	records, total, err := s.lister.ListAccounts(c.Context(), opts)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"count":   total,
		"results": records,
	})
}

// AdminGet returns one account plus its fieldset layout for the edit form.
func (s *Server) AdminGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}

	account, err := s.repo.Accounts().GetByID(c.Context(), id.String())
	if err != nil {
		return notFound(c, "account not found")
	}

	return c.JSON(fiber.Map{
		"record":    account,
		"fieldsets": s.lister.Resource().Fieldsets,
		"read_only": s.lister.Resource().ReadOnlyFields(),
	})
}

// AdminUpdate applies a ChangeForm edit to an account.
func (s *Server) AdminUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}

	form := new(admin.ChangeForm)
	if err := c.BodyParser(form); err != nil {
		return badRequest(c, "invalid payload")
	}

	account, err := s.repo.Accounts().GetByID(c.Context(), id.String())
	if err != nil {
		return notFound(c, "account not found")
	}

	if err := form.Apply(s.lister.Resource(), account); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := s.repo.Accounts().AdminUpdate(c.Context(), account)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(updated)
}

// AdminSetPassword rotates an account credential through the confirmation
// form.
func (s *Server) AdminSetPassword(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}

	form := new(admin.CreationForm)
	if err := c.BodyParser(form); err != nil {
		return badRequest(c, "invalid payload")
	}

	account, err := s.repo.Accounts().GetByID(c.Context(), id.String())
	if err != nil {
		return notFound(c, "account not found")
	}
	form.Email = account.Email

	if err := form.Validate(); err != nil {
		return validationError(c, err)
	}

	if err := account.SetPassword(form.Password1); err != nil {
		return mapDomainError(c, err)
	}

	if err := s.repo.Accounts().ResetPassword(c.Context(), id, account.PasswordHash); err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"detail": "password updated"})
}

// AdminDelete removes an account permanently. There is no soft delete.
func (s *Server) AdminDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}

	if err := s.repo.Accounts().HardDelete(c.Context(), id); err != nil {
		return notFound(c, "account not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
