package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventboard/internal/auth"
	apperrors "eventboard/internal/errors"
	"eventboard/internal/logging"
	"eventboard/internal/model"
	"eventboard/internal/repository"
)

// RegisterInput is the data needed to create a user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
	User      *model.User
}

// UserService handles registration, login and the authenticated user.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Current(ctx context.Context, userID string) (*model.User, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type userService struct {
	users      repository.UserRepository
	hasher     *auth.PasswordHasher
	jwtService *auth.JWTService
	tokens     auth.TokenStoreInterface
	now        func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, hasher *auth.PasswordHasher, jwtService *auth.JWTService, tokens auth.TokenStoreInterface) UserService {
	return &userService{
		users:      users,
		hasher:     hasher,
		jwtService: jwtService,
		tokens:     tokens,
		now:        time.Now,
	}
}

// NormalizeEmail trims and lowercases an email so lookups are case insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with a hashed password.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := NormalizeEmail(in.Email)

	// Fast path only; the unique index decides under concurrency.
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check user existence: %w: %w", apperrors.ErrStorageUnavailable, err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Date:         s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w: %w", apperrors.ErrStorageUnavailable, err)
	}

	logger := logging.FromContext(ctx)
	logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login verifies credentials and issues a signed token.
func (s *userService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w: %w", apperrors.ErrStorageUnavailable, err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, err
	}

	token, claims, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user,
	}, nil
}

// Current loads the user behind an authenticated identity.
func (s *userService) Current(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	return user, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *userService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return apperrors.ErrMalformedToken
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}
	if err := s.tokens.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}
