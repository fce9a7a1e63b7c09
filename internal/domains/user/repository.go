package user

import (
	"context"
)

// Repository is the data-access contract for user accounts.
type Repository interface {
	// Create inserts the user and fills in the assigned id and creation
	// timestamp. Returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, u *User) error

	// FindByEmail returns ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns ErrUserNotFound when no account matches.
	FindByID(ctx context.Context, id int64) (*User, error)

	// ExistsByEmail reports whether an account with this email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
