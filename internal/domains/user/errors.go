package user

import "errors"

// Authorization
var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrForbidden    = errors.New("forbidden: admin or super_admin role required")
	ErrRoleLookup   = errors.New("could not determine caller role")
)

// Repository-level errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Provisioning
var (
	ErrProvisioningNotConfigured = errors.New("user provisioning is not configured")
	ErrIdentityCreation          = errors.New("failed to create identity")
	ErrProfileCreation           = errors.New("failed to create profile")
)

// IsAuthorizationError reports whether err means the caller was not allowed in.
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrRoleLookup)
}
