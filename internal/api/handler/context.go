package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/algo/shoe-inventory/internal/api/middleware"
	"github.com/algo/shoe-inventory/internal/core/domain"
)

// requireIdentity returns the authenticated caller. The access policy normally
// stops anonymous requests first; this guards routes mounted outside it.
func requireIdentity(c echo.Context) (domain.Identity, error) {
	id := middleware.IdentityFrom(c)
	if !id.Authenticated() {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs struct
// validation. Malformed bodies surface as echo 400 errors.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
