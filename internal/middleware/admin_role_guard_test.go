package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"carshop/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func runAdminGuard(t *testing.T, role interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set(middleware.CtxUserRoleKey, role)
	}

	next := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "1"})
	}
	err := middleware.AdminRoleGuard()(next)(c)
	assert.NoError(t, err)
	return rec
}

func TestAdminRoleGuard_NoRole(t *testing.T) {
	rec := runAdminGuard(t, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard_UserRoleForbidden(t *testing.T) {
	rec := runAdminGuard(t, "USER")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoleGuard_AdminPasses(t *testing.T) {
	rec := runAdminGuard(t, "ADMIN")
	assert.Equal(t, http.StatusOK, rec.Code)
}
