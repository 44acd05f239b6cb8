package session

import (
	"errors"
	"time"

	"tableorder/internal/pkg/guard"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed is returned when a credential cannot be parsed or its
	// signature does not verify.
	ErrTokenMalformed = errors.New("session token is malformed")

	// ErrTokenExpired is returned when a credential parses and verifies but
	// its expiry lies in the past.
	ErrTokenExpired = errors.New("session token is expired")

	// ErrClaimsAreNotConstructed is returned when a Claims instance was not
	// produced by a TokenDecoder.
	ErrClaimsAreNotConstructed = errors.New("Claims must be produced by TokenDecoder.Decode")
)

// Claims holds the identity and role a verified session credential carries.
// Claims are derived, never mutated; each decode call recomputes them from
// the raw credential string.
type Claims struct {
	subjectID int64
	role      Role
	issuedAt  time.Time
	expiresAt time.Time

	guard guard.ConstructorGuard
}

// SubjectID returns the user or guest identifier the token was issued to.
func (c Claims) SubjectID() int64 {
	return c.subjectID
}

// Role returns the access level the token carries.
func (c Claims) Role() Role {
	return c.role
}

// IssuedAt returns the token issue time.
func (c Claims) IssuedAt() time.Time {
	return c.issuedAt
}

// ExpiresAt returns the token expiry time.
func (c Claims) ExpiresAt() time.Time {
	return c.expiresAt
}

// Validate ensures the Claims were produced by a decoder.
func (c Claims) Validate() error {
	return c.guard.Validate(ErrClaimsAreNotConstructed)
}

// tokenClaims is the wire shape of the credential payload. The identity
// service mints tokens with a numeric subject id and a role string alongside
// the registered claims.
type tokenClaims struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenDecoder verifies and decodes session credentials minted by the
// external identity service. It never mints tokens itself.
//
// Decoding is pure: no network, no mutable state. Callers must treat any
// decode failure as an anonymous session, never as a default role.
type TokenDecoder struct {
	secret []byte
}

// NewTokenDecoder creates a decoder for tokens signed with the given
// HMAC secret.
func NewTokenDecoder(secret string) TokenDecoder {
	return TokenDecoder{secret: []byte(secret)}
}

// Decode parses and verifies a raw credential string.
//
// Failure modes:
//   - ErrTokenMalformed: the token cannot be parsed, the signature does not
//     verify, or the payload carries an unrecognized role.
//   - ErrTokenExpired: the token verifies but now > expiresAt.
func (d TokenDecoder) Decode(rawToken string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	payload := &tokenClaims{}
	parsed, err := parser.ParseWithClaims(rawToken, payload, func(_ *jwt.Token) (any, error) {
		return d.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, errors.Join(ErrTokenMalformed, err)
	}
	if !parsed.Valid {
		return Claims{}, ErrTokenMalformed
	}

	role, err := RoleFromString(payload.Role)
	if err != nil {
		return Claims{}, errors.Join(ErrTokenMalformed, err)
	}

	claims := Claims{
		subjectID: payload.ID,
		role:      role,
		guard:     guard.NewConstructorGuard(),
	}
	if payload.IssuedAt != nil {
		claims.issuedAt = payload.IssuedAt.Time
	}
	if payload.ExpiresAt != nil {
		claims.expiresAt = payload.ExpiresAt.Time
	}

	return claims, nil
}
