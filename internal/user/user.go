// Package user defines the account storage contract. All durable truth about
// accounts lives behind Repository; nothing in the process keeps its own copy.
package user

import (
	"context"
	"errors"

	"github.com/authgate/authgate/internal/user/entity"
)

var (
	// ErrNotFound is returned by lookups when no account matches.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Create when the email is already
	// registered. Email uniqueness is enforced at the storage boundary.
	ErrDuplicateEmail = errors.New("email already registered")
)

type Repository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListPublic(ctx context.Context) ([]entity.PublicUser, error)
}
