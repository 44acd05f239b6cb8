package session

import (
	"fmt"

	"tableorder/internal/pkg/errs"
)

// Role represents the access level a session credential carries.
// It is a value object decoded from the signed token and consulted by the
// route guard when matching role-restricted path prefixes.
//
// Roles are not hierarchical in code; the policy table decides which roles
// may reach which prefixes.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleGuest is a provisionally identified diner without an account.
	RoleGuest

	// RoleEmployee is restaurant staff handling orders and deliveries.
	RoleEmployee

	// RoleAdmin manages the restaurant's menu, staff, and order flow.
	RoleAdmin

	// RoleOwner has full access to every surface.
	RoleOwner
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "Unknown",
		RoleGuest:    "Guest",
		RoleEmployee: "Employee",
		RoleAdmin:    "Admin",
		RoleOwner:    "Owner",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleGuest:    "Guest",
		RoleEmployee: "Employee",
		RoleAdmin:    "Admin",
		RoleOwner:    "Owner",
	}
}

// RoleFromString parses the role claim carried in a token.
// The match is exact; unrecognized strings fail so a forged or mistyped role
// never silently maps onto a valid one.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a recognized role", s))
}

// Validate checks if the Role value is valid.
//
// Valid roles are: Guest, Employee, Admin, Owner.
// RoleUnknown (0) and any other values are invalid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// This method implements the fmt.Stringer interface and is safe to call on
// any Role value, including invalid ones.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}
