package session

import (
	"fmt"

	"tableorder/internal/pkg/errs"
)

// IdentityKind enumerates the mutually exclusive ways a diner can be known.
type IdentityKind int

const (
	// IdentityAnonymous means no valid credential was presented.
	IdentityAnonymous IdentityKind = iota

	// IdentityAuthenticated is a registered user account.
	IdentityAuthenticated

	// IdentityGuest is a provisional table-scoped guest identity.
	IdentityGuest
)

// Identity is a tagged variant attributing an order to exactly one of:
// an authenticated user, a guest, or nobody. It replaces the pair of
// independently nullable user/guest ids on the wire with a single value
// that cannot represent both at once.
//
// The zero value is Anonymous.
type Identity struct {
	kind    IdentityKind
	userID  int64
	guestID int64
}

// Anonymous returns the identity of a session with no valid credential.
func Anonymous() Identity {
	return Identity{kind: IdentityAnonymous}
}

// AuthenticatedUser creates an identity for a registered user account.
func AuthenticatedUser(userID int64) (Identity, error) {
	if userID <= 0 {
		return Identity{}, errs.NewValueIsInvalidErrorWithCause("userId",
			fmt.Errorf("%d is not a valid user id", userID))
	}
	return Identity{kind: IdentityAuthenticated, userID: userID}, nil
}

// GuestUser creates an identity for a provisional guest.
func GuestUser(guestID int64) (Identity, error) {
	if guestID <= 0 {
		return Identity{}, errs.NewValueIsInvalidErrorWithCause("guestId",
			fmt.Errorf("%d is not a valid guest id", guestID))
	}
	return Identity{kind: IdentityGuest, guestID: guestID}, nil
}

// IdentityFromClaims derives the identity a verified credential represents:
// a Guest role maps to a guest identity, every other valid role to an
// authenticated user.
func IdentityFromClaims(claims Claims) (Identity, error) {
	if err := claims.Validate(); err != nil {
		return Identity{}, err
	}
	if claims.Role() == RoleGuest {
		return GuestUser(claims.SubjectID())
	}
	return AuthenticatedUser(claims.SubjectID())
}

// Kind returns which variant this identity is.
func (i Identity) Kind() IdentityKind {
	return i.kind
}

// IsAnonymous reports whether no identity is attached.
func (i Identity) IsAnonymous() bool {
	return i.kind == IdentityAnonymous
}

// UserID returns the user id and true when the identity is Authenticated.
func (i Identity) UserID() (int64, bool) {
	return i.userID, i.kind == IdentityAuthenticated
}

// GuestID returns the guest id and true when the identity is Guest.
func (i Identity) GuestID() (int64, bool) {
	return i.guestID, i.kind == IdentityGuest
}

// String implements fmt.Stringer.
func (i Identity) String() string {
	switch i.kind {
	case IdentityAuthenticated:
		return fmt.Sprintf("user:%d", i.userID)
	case IdentityGuest:
		return fmt.Sprintf("guest:%d", i.guestID)
	default:
		return "anonymous"
	}
}
