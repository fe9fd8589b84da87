package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextWithRoles(e *echo.Echo, roles []string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), UserRolesKey, roles)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireRole_Allowed(t *testing.T) {
	e := echo.New()
	c, rec := contextWithRoles(e, []string{"therapist"})

	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	if err := RequireRole("admin", "therapist")(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	e := echo.New()
	c, _ := contextWithRoles(e, []string{"patient"})

	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	err := RequireRole("admin", "therapist")(handler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestRequireRole_StaffNotAllowedOnPatientRoutes(t *testing.T) {
	e := echo.New()
	c, _ := contextWithRoles(e, []string{"admin"})

	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	err := RequireRole("patient")(handler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestRequireRole_NoRoles(t *testing.T) {
	e := echo.New()
	c, _ := contextWithRoles(e, nil)

	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	err := RequireRole("admin")(handler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}
