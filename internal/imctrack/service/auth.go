package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bodytraq/imctrack/internal/imctrack/domain"
	"github.com/bodytraq/imctrack/internal/imctrack/store"
	"github.com/bodytraq/imctrack/pkg/cryptox"
	"github.com/bodytraq/imctrack/pkg/idx"
	"github.com/bodytraq/imctrack/pkg/slogx"
)

var (
	// ErrUnknownEmail and ErrWrongPassword are deliberately distinct; the
	// current API contract exposes which credential was wrong. Both map to
	// 401 at the HTTP boundary.
	ErrUnknownEmail  = errors.New("invalid email")
	ErrWrongPassword = errors.New("invalid password")

	// ErrEmailTaken reports a registration or email change colliding with
	// an existing account.
	ErrEmailTaken = errors.New("email already registered")
)

// AuthService verifies credentials and hands out initial token pairs.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
}

// Login checks email+password and issues an access/refresh pair keyed on the
// user's email.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUnknownEmail
		}
		return domain.TokenPair{}, fmt.Errorf("looking up user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login password mismatch", "email", email)
			return domain.TokenPair{}, ErrWrongPassword
		}
		return domain.TokenPair{}, fmt.Errorf("verifying password: %w", err)
	}

	return s.Tokens.IssuePair(user.Email)
}

// Register creates a new account. Input validation (email syntax, password
// length) happens at the HTTP boundary; this applies the hashing and the
// uniqueness rule.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (domain.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}
