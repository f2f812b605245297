// Package auth orchestrates registration, login and the bearer-token request
// guard. Every operation is request-scoped and stateless; durable state lives
// behind user.Repository and session validity lives entirely inside the token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/authgate/authgate/internal/token"
	"github.com/authgate/authgate/internal/user"
	"github.com/authgate/authgate/internal/user/entity"
	"github.com/authgate/authgate/pkg/utilities"
)

var (
	ErrValidation = errors.New("invalid input")
	// ErrInvalidCredentials means the account exists but the password does
	// not match. Lookups that find no account return user.ErrNotFound
	// instead; keeping the two apart at the API surface is a deliberate
	// carry-over and does allow email enumeration (see DESIGN.md).
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service orchestrates authentication flows on top of the repository, the
// password hasher and the token service.
type Service struct {
	repo   user.Repository
	hasher PasswordHasher
	tokens *token.Service
}

func NewService(repo user.Repository, hasher PasswordHasher, tokens *token.Service) *Service {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 10}
	}
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// NormalizeEmail lower-cases and trims an email so lookups and the unique
// index agree on one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates input, hashes the password and creates the account.
// A uniqueness violation surfaces as user.ErrDuplicateEmail; the returned
// projection never includes the hash.
func (s *Service) Register(ctx context.Context, name, email, password string) (entity.PublicUser, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" {
		return entity.PublicUser{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if email == "" {
		return entity.PublicUser{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if password == "" {
		return entity.PublicUser{}, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return entity.PublicUser{}, fmt.Errorf("%w: email is not valid", ErrValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return entity.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		ID:           utilities.NewKSUID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return entity.PublicUser{}, err
	}
	return u.Public(), nil
}

// LoginResult carries the issued token plus the public identity.
type LoginResult struct {
	Token string
	User  entity.PublicUser
}

// Login looks up the account, verifies the password and issues a session
// token with claims {id, email, name}.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	ok, err := s.hasher.Verify(u.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("verify password for %s: %w", u.ID, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: tok, User: u.Public()}, nil
}

// ListUsers returns all accounts as public projections.
func (s *Service) ListUsers(ctx context.Context) ([]entity.PublicUser, error) {
	return s.repo.ListPublic(ctx)
}
