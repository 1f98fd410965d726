package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/warikan-app/warikan/internal/user"
)

// Common errors
var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrHandleTaken        = errors.New("handle already taken")
	ErrAccountNotFound    = errors.New("account not found")
)

// AccountStore defines the account persistence operations the service needs.
type AccountStore interface {
	Create(ctx context.Context, a *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
}

// ProfileStore defines the profile persistence operations the service needs.
// *user.Repository satisfies it.
type ProfileStore interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id string) (*user.User, error)
	GetByHandle(ctx context.Context, handle string) (*user.User, error)
}

// Service implements registration, login and session lookup.
type Service struct {
	accounts AccountStore
	profiles ProfileStore
	tokens   *JWTManager
}

// NewService creates a new auth service with dependencies injected
func NewService(accounts AccountStore, profiles ProfileStore, tokens *JWTManager) *Service {
	return &Service{
		accounts: accounts,
		profiles: profiles,
		tokens:   tokens,
	}
}

// Register creates an account and its profile. The two writes are separate
// steps: if the profile insert fails the account still exists, and the
// missing profile is recreated on the user's first successful login.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*user.User, error) {
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	// Handle uniqueness is checked before writing; the unique index on
	// users.handle is the backstop for the read-then-write race.
	taken, err := s.profiles.GetByHandle(ctx, req.Handle)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, ErrHandleTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &Account{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	profile := &user.User{
		ID:       account.ID,
		Handle:   req.Handle,
		Email:    req.Email,
		Username: req.Handle,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		slog.Error("profile creation failed after account creation",
			"account_id", account.ID, "error", err)
		return nil, err
	}

	slog.Info("user registered", "user_id", account.ID, "handle", req.Handle)
	return profile, nil
}

// Login authenticates a user. The login field is a handle, resolved to an
// email through the profile table; a value containing '@' is treated as the
// email itself, which also covers accounts whose profile write failed.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (string, *user.User, error) {
	email := req.Login
	if !strings.Contains(req.Login, "@") {
		profile, err := s.profiles.GetByHandle(ctx, req.Login)
		if err != nil {
			return "", nil, err
		}
		if profile == nil {
			return "", nil, ErrInvalidCredentials
		}
		email = profile.Email
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if account == nil || !CheckPassword(account.PasswordHash, req.Password) {
		return "", nil, ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByID(ctx, account.ID)
	if err != nil {
		return "", nil, err
	}
	if profile == nil {
		// Registration got the account written but not the profile.
		profile, err = s.reconcileProfile(ctx, account)
		if err != nil {
			return "", nil, err
		}
	}

	token, err := s.tokens.Generate(account.ID, account.Email)
	if err != nil {
		return "", nil, err
	}

	return token, profile, nil
}

// Me returns the profile for the authenticated user id.
func (s *Service) Me(ctx context.Context, userID string) (*user.User, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, user.ErrUserNotFound
	}
	return profile, nil
}

// reconcileProfile recreates a missing profile from the account record. The
// handle defaults to the email local part, suffixed when already taken.
func (s *Service) reconcileProfile(ctx context.Context, account *Account) (*user.User, error) {
	handle := account.Email
	if i := strings.Index(handle, "@"); i > 0 {
		handle = handle[:i]
	}

	taken, err := s.profiles.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		handle = handle + "-" + account.ID[:4]
	}

	profile := &user.User{
		ID:       account.ID,
		Handle:   handle,
		Email:    account.Email,
		Username: handle,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	slog.Warn("recreated missing profile at login", "user_id", account.ID, "handle", handle)
	return profile, nil
}
