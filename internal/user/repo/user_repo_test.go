package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgate/authgate/internal/user"
	"github.com/authgate/authgate/internal/user/entity"
)

func newRepoWithMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(sqlx.NewDb(db, "postgres")), mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).
		WithArgs("u1", "Ann", "ann@x.com", "hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &entity.User{
		ID:           "u1",
		Name:         "Ann",
		Email:        "ann@x.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_users_email"})

	err := repo.Create(context.Background(), &entity.User{
		ID:    "u1",
		Email: "ann@x.com",
	})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
		AddRow("u1", "Ann", "ann@x.com", "hash", now)
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+email=\$1`).
		WithArgs("ann@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT`).
		WithArgs("nobody@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}))

	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestListPublic(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "name", "email"}).
		AddRow("u1", "Ann", "ann@x.com").
		AddRow("u2", "Bob", "bob@x.com")
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name,\s*email\s+FROM\s+users`).
		WillReturnRows(rows)

	got, err := repo.ListPublic(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entity.PublicUser{ID: "u1", Name: "Ann", Email: "ann@x.com"}, got[0])
}
