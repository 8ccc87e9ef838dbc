package user

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/eduhub/internal/db/dbtest"
	"github.com/mind-engage/eduhub/internal/validate"
)

func TestMain(m *testing.M) {
	hashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func newService(t *testing.T) (*Service, *SQLStore) {
	st := NewSQLStore(dbtest.Open(t))
	return NewService(st), st
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	u, err := svc.Register(ctx, Registration{Email: "  Ada@Example.com ", Password: "s3cret!", DisplayName: " Ada "})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "Ada", u.DisplayName)
	assert.Equal(t, RoleStudent, u.Role)
	assert.NotEqual(t, "s3cret!", u.PasswordHash)

	got, err := svc.Authenticate(ctx, "ADA@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cret!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.Register(ctx, Registration{Email: "ada@example.com", Password: "s3cret!", DisplayName: "Ada"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, Registration{Email: "ADA@example.com", Password: "other1", DisplayName: "Ada Two"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(context.Background(), Registration{Email: "not-an-email", Password: "123", DisplayName: "A"})

	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("email"))
	assert.True(t, verr.Has("password"))
	assert.True(t, verr.Has("displayName"))
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	u, err := svc.Register(ctx, Registration{Email: "ada@example.com", Password: "s3cret!", DisplayName: "Ada"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID, PasswordChange{OldPassword: "nope", NewPassword: "newpass1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, u.ID, PasswordChange{OldPassword: "s3cret!", NewPassword: "newpass1"}))
	_, err = svc.Authenticate(ctx, "ada@example.com", "newpass1")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, "ada@example.com", "s3cret!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, "missing", PasswordChange{OldPassword: "x", NewPassword: "newpass1"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckHash(t *testing.T) {
	u := User{}
	require.NoError(t, u.SetPassword("pw123456"))
	assert.True(t, CheckHash(u.PasswordHash, "pw123456"))
	assert.False(t, CheckHash(u.PasswordHash, "pw"))
	assert.False(t, CheckHash("", ""))
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	u, err := svc.Register(ctx, Registration{Email: "ada@example.com", Password: "s3cret!", DisplayName: "Ada"})
	require.NoError(t, err)

	got, err := svc.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.CreatedAt, got.CreatedAt)

	_, err = svc.Profile(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
