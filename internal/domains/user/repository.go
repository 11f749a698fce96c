package user

import "context"

// ProfileRepository reads and writes rows of the users table.
type ProfileRepository interface {
	// GetRole returns the stored role of an identity, ErrUserNotFound if no row exists.
	GetRole(ctx context.Context, id string) (Role, error)

	// UpsertProfile inserts the profile or updates the row already created
	// by the on-signup trigger. Safe to call any number of times.
	UpsertProfile(ctx context.Context, p *Profile) error
}
