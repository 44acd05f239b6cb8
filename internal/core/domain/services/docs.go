// Package services provides domain services that implement business rules
// spanning more than one model package.
//
// The package includes:
//   - RouteGuard: the access-control policy deciding whether a visitor may
//     open a route or must be redirected
//
// Domain services here are stateless and side-effect free; adapters feed
// them the request path and decoded session claims and act on the returned
// decision.
package services
