package repository

import (
	"context"
	"errors"
	"time"

	"account-credential-service/internal/user/domain"
)

// ErrDuplicateIdentity is returned by Insert when the email or mobile number
// is already claimed by another user.
var ErrDuplicateIdentity = errors.New("email or mobile number already registered")

// Repository defines persistence for users. Lookups return nil, nil when no
// row matches; errors are reserved for storage failures. Each call is atomic.
type Repository interface {
	// FindByEmail returns the user with the given (lowercase) email, or nil.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailOrMobile returns a user claiming either identifier, or nil.
	FindByEmailOrMobile(ctx context.Context, email, mobile string) (*domain.User, error)
	// FindByResetDigest returns the user holding the given unexpired reset
	// token digest, or nil. Expired digests are filtered at the store.
	FindByResetDigest(ctx context.Context, digest string) (*domain.User, error)
	// Insert persists a new user, assigns its ID, and returns the stored
	// record. Returns ErrDuplicateIdentity on a uniqueness conflict.
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)
	// SetResetToken stores (or overwrites) the user's reset token digest and
	// expiry.
	SetResetToken(ctx context.Context, userID, digest string, expiresAt time.Time) error
	// ConsumeResetToken atomically replaces the password hash and clears the
	// reset fields, but only while digest still matches the stored one.
	// Returns false when the digest was already consumed or replaced.
	ConsumeResetToken(ctx context.Context, userID, digest, newPasswordHash string) (bool, error)
}
