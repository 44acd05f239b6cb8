package http

import (
	"log/slog"
	"net/http"

	"tableorder/internal/core/domain/model/session"
	"tableorder/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// NewRouteGuardMiddleware returns echo middleware that applies the route
// guard to page navigation. API and asset routes pass through untouched.
// An expired or malformed credential is treated as no credential at all,
// so the visitor lands on the login page instead of an error screen.
func NewRouteGuardMiddleware(
	routeGuard *services.RouteGuard,
	decoder session.TokenDecoder,
	logger *slog.Logger,
) echo.MiddlewareFunc {
	log := logger.With("component", "route_guard")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			path := ctx.Request().URL.Path
			if !routeGuard.ShouldEvaluate(path) {
				return next(ctx)
			}

			decision := routeGuard.Authorize(path, ctx.QueryParam("from"), guardClaims(ctx, decoder))
			if decision.IsAllowed() {
				return next(ctx)
			}

			log.Debug("redirecting visitor",
				"path", path,
				"target", decision.Target(),
				"reason", int(decision.Reason()))
			return ctx.Redirect(http.StatusFound, decision.Target())
		}
	}
}

// guardClaims decodes the accessToken cookie into claims, or nil when the
// cookie is missing or the token does not verify.
func guardClaims(ctx echo.Context, decoder session.TokenDecoder) *session.Claims {
	cookie, err := ctx.Cookie(accessTokenCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := decoder.Decode(cookie.Value)
	if err != nil {
		return nil
	}
	return &claims
}
