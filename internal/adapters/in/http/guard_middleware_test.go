package http_test

import (
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	adapterhttp "tableorder/internal/adapters/in/http"
	"tableorder/internal/core/domain/model/session"
	"tableorder/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedEcho(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.Use(adapterhttp.NewRouteGuardMiddleware(
		services.NewRouteGuard(),
		session.NewTokenDecoder(testSecret),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	))
	ok := func(ctx echo.Context) error { return ctx.String(nethttp.StatusOK, "page") }
	e.GET("/*", ok)
	e.GET("/api/v1/ping", ok)
	return e
}

func browse(e *echo.Echo, path string, cookies ...*nethttp.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouteGuardMiddleware(t *testing.T) {
	e := newGuardedEcho(t)

	t.Run("open_route_passes_without_credential", func(t *testing.T) {
		rec := browse(e, "/menu")
		assert.Equal(t, nethttp.StatusOK, rec.Code)
	})

	t.Run("api_routes_are_never_evaluated", func(t *testing.T) {
		rec := browse(e, "/api/v1/ping")
		assert.Equal(t, nethttp.StatusOK, rec.Code)
	})

	t.Run("staff_route_redirects_anonymous_to_login", func(t *testing.T) {
		rec := browse(e, "/manage/orders")

		require.Equal(t, nethttp.StatusFound, rec.Code)
		assert.Equal(t, "/auth?from=%2Fmanage%2Forders", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("staff_route_admits_employee", func(t *testing.T) {
		rec := browse(e, "/manage/orders", authCookie(t, 4, "Employee"))
		assert.Equal(t, nethttp.StatusOK, rec.Code)
	})

	t.Run("admin_route_bounces_employee_home", func(t *testing.T) {
		rec := browse(e, "/manage/admin/users", authCookie(t, 4, "Employee"))

		require.Equal(t, nethttp.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("guest_route_admits_guest", func(t *testing.T) {
		rec := browse(e, "/guest/orders", authCookie(t, 9, "Guest"))
		assert.Equal(t, nethttp.StatusOK, rec.Code)
	})

	t.Run("expired_credential_counts_as_anonymous", func(t *testing.T) {
		stale := &nethttp.Cookie{Name: "accessToken", Value: mintToken(t, 4, "Employee", -time.Hour)}

		rec := browse(e, "/manage/orders", stale)

		require.Equal(t, nethttp.StatusFound, rec.Code)
		assert.Equal(t, "/auth?from=%2Fmanage%2Forders", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("login_page_bounces_authenticated_staff", func(t *testing.T) {
		rec := browse(e, "/auth", authCookie(t, 4, "Employee"))

		require.Equal(t, nethttp.StatusFound, rec.Code)
		assert.Equal(t, "/manage", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("login_page_honors_return_route", func(t *testing.T) {
		rec := browse(e, "/auth?from=/manage/orders", authCookie(t, 4, "Employee"))

		require.Equal(t, nethttp.StatusFound, rec.Code)
		assert.Equal(t, "/manage/orders", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("login_page_is_open_to_anonymous", func(t *testing.T) {
		rec := browse(e, "/auth")
		assert.Equal(t, nethttp.StatusOK, rec.Code)
	})
}
