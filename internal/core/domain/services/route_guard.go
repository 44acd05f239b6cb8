package services

import (
	"net/url"
	"sort"
	"strings"

	"tableorder/internal/core/domain/model/session"
)

// Reason explains why the guard redirected instead of allowing.
type Reason int

const (
	ReasonNone Reason = iota

	// ReasonAlreadyAuthenticated: an authenticated visitor opened a page
	// that only makes sense without a credential.
	ReasonAlreadyAuthenticated

	// ReasonLoginRequired: the route needs a credential and none was
	// presented.
	ReasonLoginRequired

	// ReasonRoleDenied: the visitor is authenticated but their role is not
	// on the route's allow list.
	ReasonRoleDenied
)

// Decision is the outcome of a route authorization check.
type Decision struct {
	allowed bool
	target  string
	reason  Reason
}

// Allow lets the request through.
func Allow() Decision {
	return Decision{allowed: true}
}

// Redirect sends the visitor to target instead of the requested route.
func Redirect(target string, reason Reason) Decision {
	return Decision{target: target, reason: reason}
}

// IsAllowed reports whether the request may proceed.
func (d Decision) IsAllowed() bool {
	return d.allowed
}

// Target returns the redirect target. Empty when the request is allowed.
func (d Decision) Target() string {
	return d.target
}

// Reason returns why the redirect was issued.
func (d Decision) Reason() Reason {
	return d.reason
}

const (
	loginRoute   = "/auth"
	homeRoute    = "/"
	staffWelcome = "/manage"
	guestWelcome = "/guest"
)

// routeRule allows a set of roles on a path prefix.
type routeRule struct {
	prefix string
	roles  map[session.Role]struct{}
}

// RouteGuard is a stateless domain service deciding route access from the
// visitor's session claims. The policy table is fixed at construction;
// matching picks the longest configured prefix that covers the path.
type RouteGuard struct {
	rules    []routeRule
	excluded []string
}

// NewRouteGuard creates a guard with the application's route policy:
//
//   - /manage/admin is for admins and owners
//   - /manage is for staff (employees, admins, owners)
//   - /guest is for anyone with a credential, guests included
//   - /auth is only reachable without a credential
//
// Requests under /api, /static and /favicon.ico are never evaluated.
func NewRouteGuard() *RouteGuard {
	rules := []routeRule{
		{prefix: "/manage/admin", roles: roleSet(session.RoleAdmin, session.RoleOwner)},
		{prefix: "/manage", roles: roleSet(session.RoleEmployee, session.RoleAdmin, session.RoleOwner)},
		{prefix: "/guest", roles: roleSet(session.RoleGuest, session.RoleEmployee, session.RoleAdmin, session.RoleOwner)},
	}
	sort.Slice(rules, func(i, j int) bool {
		return len(rules[i].prefix) > len(rules[j].prefix)
	})

	return &RouteGuard{
		rules:    rules,
		excluded: []string{"/api", "/static", "/favicon.ico"},
	}
}

func roleSet(roles ...session.Role) map[session.Role]struct{} {
	set := make(map[session.Role]struct{}, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

// ShouldEvaluate reports whether the guard applies to the path at all.
// Asset and API routes carry their own protection and are skipped.
func (g *RouteGuard) ShouldEvaluate(path string) bool {
	for _, prefix := range g.excluded {
		if matchesPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// Authorize decides whether a visitor with the given claims may open path.
// from is the optional return route carried by the login page; it is
// honored when an already authenticated visitor lands on /auth.
//
// A nil claims pointer means no valid credential was presented. Token
// decode failures upstream are treated exactly the same way.
func (g *RouteGuard) Authorize(path, from string, claims *session.Claims) Decision {
	if matchesPrefix(path, loginRoute) {
		if claims == nil {
			return Allow()
		}
		target := from
		if target == "" || target == homeRoute {
			target = defaultRouteForRole(claims.Role())
		}
		return Redirect(target, ReasonAlreadyAuthenticated)
	}

	rule, ok := g.match(path)
	if !ok {
		return Allow()
	}

	if claims == nil {
		return Redirect(loginTarget(path), ReasonLoginRequired)
	}
	if _, allowed := rule.roles[claims.Role()]; !allowed {
		return Redirect(homeRoute, ReasonRoleDenied)
	}
	return Allow()
}

func (g *RouteGuard) match(path string) (routeRule, bool) {
	for _, rule := range g.rules {
		if matchesPrefix(path, rule.prefix) {
			return rule, true
		}
	}
	return routeRule{}, false
}

func matchesPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func loginTarget(from string) string {
	return loginRoute + "?from=" + url.QueryEscape(from)
}

func defaultRouteForRole(role session.Role) string {
	if role == session.RoleGuest {
		return guestWelcome
	}
	return staffWelcome
}
