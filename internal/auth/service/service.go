package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"account-credential-service/internal/security"
	"account-credential-service/internal/telemetry"
	"account-credential-service/internal/user/domain"
	"account-credential-service/internal/user/repository"
)

// Sentinel errors for the auth service; the handler maps them to HTTP statuses.
var (
	ErrDuplicateIdentity     = errors.New("email or mobile number already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrTokenInvalidOrExpired = errors.New("reset token is invalid or expired")
)

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmailOrMobile(ctx context.Context, email, mobile string) (*domain.User, error)
	FindByResetDigest(ctx context.Context, digest string) (*domain.User, error)
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)
	SetResetToken(ctx context.Context, userID, digest string, expiresAt time.Time) error
	ConsumeResetToken(ctx context.Context, userID, digest, newPasswordHash string) (bool, error)
}

// Mailer delivers the raw reset token to the account holder. Fire-and-forget:
// the service never surfaces delivery failures to the HTTP caller.
type Mailer interface {
	SendPasswordReset(email, rawToken string) error
}

// UserSummary is the public projection of a user returned by signup and login.
type UserSummary struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
}

// AuthResult holds a user summary plus a freshly issued session token.
type AuthResult struct {
	User      UserSummary
	Token     string
	ExpiresAt time.Time
}

// AuthService orchestrates signup, login, logout, forgot-password, and
// reset-password over the credential store and token managers.
type AuthService struct {
	users       UserRepo
	hasher      *security.Hasher
	resetTokens *security.ResetTokenManager
	sessions    *security.TokenProvider
	mailer      Mailer
	events      telemetry.EventEmitter
	logger      *slog.Logger
}

// NewAuthService returns an AuthService with the given dependencies.
// events may be nil; account events are then not emitted.
func NewAuthService(
	users UserRepo,
	hasher *security.Hasher,
	resetTokens *security.ResetTokenManager,
	sessions *security.TokenProvider,
	mailer Mailer,
	events telemetry.EventEmitter,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:       users,
		hasher:      hasher,
		resetTokens: resetTokens,
		sessions:    sessions,
		mailer:      mailer,
		events:      events,
		logger:      logger,
	}
}

func (s *AuthService) emit(ctx context.Context, eventType, userID, email string) {
	telemetry.EmitAsync(s.events, ctx, &telemetry.Event{
		Type:   eventType,
		UserID: userID,
		Email:  email,
		At:     time.Now().UTC(),
	})
}

// Signup validates the input, creates the user with a hashed password, and
// returns a session token. Fails with ErrDuplicateIdentity when the email
// (case-insensitive) or mobile number is already claimed.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	in = in.normalize()
	if verr := validateSignup(in); verr != nil {
		return nil, verr
	}

	existing, err := s.users.FindByEmailOrMobile(ctx, in.Email, in.MobileNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateIdentity
	}

	hash, err := s.hasher.Hash([]byte(in.Password))
	if err != nil {
		return nil, err
	}
	dob, _ := time.Parse("2006-01-02", in.DateOfBirth)
	user := &domain.User{
		FullName:     in.FullName,
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
		Gender:       domain.Gender(in.Gender),
		DateOfBirth:  dob,
		PasswordHash: hash,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	stored, err := s.users.Insert(ctx, user)
	if err != nil {
		// The store's unique constraints catch the race two concurrent
		// signups with the same identity would otherwise win together.
		if errors.Is(err, repository.ErrDuplicateIdentity) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}

	token, expiresAt, err := s.sessions.Issue(stored.ID, stored.Email)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user signed up", slog.String("user_id", stored.ID))
	s.emit(ctx, telemetry.EventSignup, stored.ID, stored.Email)
	return &AuthResult{User: summarize(stored), Token: token, ExpiresAt: expiresAt}, nil
}

// Login authenticates the email/password pair and returns a session token.
// Unknown email and wrong password are indistinguishable: both return
// ErrInvalidCredentials, and the unknown-email path still burns a bcrypt
// comparison so response timing does not reveal whether the email exists.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in = in.normalize()
	if verr := validateLogin(in); verr != nil {
		return nil, verr
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.hasher.DummyVerify([]byte(in.Password))
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(user.PasswordHash, []byte(in.Password)) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", slog.String("user_id", user.ID))
	s.emit(ctx, telemetry.EventLogin, user.ID, user.Email)
	return &AuthResult{User: summarize(user), Token: token, ExpiresAt: expiresAt}, nil
}

// Logout is a client-side no-op: sessions are stateless bearer tokens and the
// server holds no revocation state.
func (s *AuthService) Logout(ctx context.Context) error {
	return nil
}

// ForgotPassword issues a reset token for the account, stores only its
// digest, and hands the raw token to the mailer. It reports success whether
// or not the email is registered so responses cannot be used to enumerate
// accounts; the raw token never appears in the HTTP response.
func (s *AuthService) ForgotPassword(ctx context.Context, in ForgotPasswordInput) error {
	in = in.normalize()
	if verr := validateForgotPassword(in); verr != nil {
		return verr
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	raw, digest, expiresAt, err := s.resetTokens.Issue()
	if err != nil {
		return err
	}
	if err := s.users.SetResetToken(ctx, user.ID, digest, expiresAt); err != nil {
		return err
	}

	go func(email, raw string) {
		if err := s.mailer.SendPasswordReset(email, raw); err != nil {
			s.logger.Warn("reset token delivery failed", slog.String("error", err.Error()))
		}
	}(user.Email, raw)

	s.logger.Info("reset token issued", slog.String("user_id", user.ID))
	s.emit(ctx, telemetry.EventResetRequested, user.ID, user.Email)
	return nil
}

// ResetPassword exchanges a valid, unexpired reset token for a new password.
// The token digest is cleared atomically with the password update, so a raw
// token is accepted at most once.
func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if verr := validateResetPassword(in); verr != nil {
		return verr
	}

	digest := security.HashResetToken(in.Token)
	user, err := s.users.FindByResetDigest(ctx, digest)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrTokenInvalidOrExpired
	}
	if !user.PendingReset(time.Now().UTC()) {
		return ErrTokenInvalidOrExpired
	}
	if err := s.resetTokens.Validate(in.Token, *user.ResetTokenDigest, *user.ResetTokenExpiresAt); err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			s.logger.Info("expired reset token presented", slog.String("user_id", user.ID))
		}
		return ErrTokenInvalidOrExpired
	}

	hash, err := s.hasher.Hash([]byte(in.Password))
	if err != nil {
		return err
	}
	ok, err := s.users.ConsumeResetToken(ctx, user.ID, digest, hash)
	if err != nil {
		return err
	}
	if !ok {
		// Digest was replaced or consumed between the read and the update.
		return ErrTokenInvalidOrExpired
	}
	s.logger.Info("password reset", slog.String("user_id", user.ID))
	s.emit(ctx, telemetry.EventPasswordReset, user.ID, user.Email)
	return nil
}

func summarize(u *domain.User) UserSummary {
	return UserSummary{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
	}
}
