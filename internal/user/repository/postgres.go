package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"account-credential-service/internal/user/domain"
)

const userColumns = `id, full_name, email, mobile_number, gender, date_of_birth,
	password_hash, reset_token_digest, reset_token_expires_at, created_at, updated_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository backed by the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByEmail returns the user with the given email, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindByEmailOrMobile returns a user claiming either identifier, or nil.
func (r *PostgresRepository) FindByEmailOrMobile(ctx context.Context, email, mobile string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 OR mobile_number = $2`, email, mobile)
	return scanUser(row)
}

// FindByResetDigest returns the user holding the given unexpired reset token
// digest, or nil. The expiry filter runs inside the store so expired digests
// never reach the caller.
func (r *PostgresRepository) FindByResetDigest(ctx context.Context, digest string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE reset_token_digest = $1 AND reset_token_expires_at > now()`, digest)
	return scanUser(row)
}

// Insert persists the user and assigns a fresh id. The unique constraints on
// email and mobile_number serialize concurrent signups for the same identity;
// a conflict surfaces as ErrDuplicateIdentity.
func (r *PostgresRepository) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	stored := *u
	stored.ID = uuid.NewString()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, full_name, email, mobile_number, gender, date_of_birth,
		                    password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		stored.ID, stored.FullName, stored.Email, stored.MobileNumber, string(stored.Gender),
		stored.DateOfBirth, stored.PasswordHash, stored.CreatedAt, stored.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return &stored, nil
}

// SetResetToken stores or overwrites the user's reset token digest and expiry.
func (r *PostgresRepository) SetResetToken(ctx context.Context, userID, digest string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET reset_token_digest = $2, reset_token_expires_at = $3, updated_at = now()
		 WHERE id = $1`,
		userID, digest, expiresAt)
	return err
}

// ConsumeResetToken replaces the password hash and clears the reset fields in
// a single statement guarded by the stored digest. The WHERE clause is the
// compare-and-set that prevents a reset from completing with a token that a
// newer forgot-password call has already replaced.
func (r *PostgresRepository) ConsumeResetToken(ctx context.Context, userID, digest, newPasswordHash string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET password_hash = $3, reset_token_digest = NULL, reset_token_expires_at = NULL,
		     updated_at = now()
		 WHERE id = $1 AND reset_token_digest = $2`,
		userID, digest, newPasswordHash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var gender string
	var digest sql.NullString
	var expires sql.NullTime
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.MobileNumber, &gender, &u.DateOfBirth,
		&u.PasswordHash, &digest, &expires, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Gender = domain.Gender(gender)
	if digest.Valid {
		u.ResetTokenDigest = &digest.String
	}
	if expires.Valid {
		t := expires.Time
		u.ResetTokenExpiresAt = &t
	}
	return &u, nil
}
