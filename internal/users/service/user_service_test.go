package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenforge/screenforge-backend/internal/users/domain"
)

type fakeRepo struct {
	users     map[string]*domain.User
	creates   int
	getErr    error
	decrement func(email string) (int, error)
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*domain.User{}}
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeRepo) Create(_ context.Context, name, email string) (*domain.User, error) {
	f.creates++
	u := &domain.User{ID: int64(len(f.users) + 1), Name: name, Email: email, Credits: domain.DefaultCredits}
	f.users[email] = u
	return u, nil
}

func (f *fakeRepo) DecrementCredits(_ context.Context, email string) (int, error) {
	return f.decrement(email)
}

func TestEnsureUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates once then reuses", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewUserService(repo, false)

		u, err := svc.EnsureUser(ctx, " Ada ", "Ada@Example.com")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", u.Email)
		assert.Equal(t, "Ada", u.Name)
		assert.Equal(t, 5, u.Credits)

		again, err := svc.EnsureUser(ctx, "Other", "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, again.ID)
		assert.Equal(t, 1, repo.creates)
	})

	t.Run("email required", func(t *testing.T) {
		_, err := NewUserService(newFakeRepo(), false).EnsureUser(ctx, "x", "  ")
		assert.ErrorIs(t, err, domain.ErrEmailRequired)
	})

	t.Run("lookup failure is not treated as missing", func(t *testing.T) {
		repo := newFakeRepo()
		repo.getErr = errors.New("conn refused")
		_, err := NewUserService(repo, false).EnsureUser(ctx, "x", "x@y.z")
		require.Error(t, err)
		assert.Equal(t, 0, repo.creates)
	})
}

func TestConsumeCredit(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled is a no-op", func(t *testing.T) {
		repo := newFakeRepo()
		repo.decrement = func(string) (int, error) { t.Fatal("should not be called"); return 0, nil }
		assert.NoError(t, NewUserService(repo, false).ConsumeCredit(ctx, "a@b.c"))
	})

	t.Run("enforced", func(t *testing.T) {
		repo := newFakeRepo()
		repo.decrement = func(string) (int, error) { return 4, nil }
		assert.NoError(t, NewUserService(repo, true).ConsumeCredit(ctx, "a@b.c"))
	})

	t.Run("out of credits", func(t *testing.T) {
		repo := newFakeRepo()
		repo.decrement = func(string) (int, error) { return 0, domain.ErrInsufficientCredits }
		err := NewUserService(repo, true).ConsumeCredit(ctx, "a@b.c")
		assert.ErrorIs(t, err, domain.ErrInsufficientCredits)
	})
}
