package services

import (
	"context"
	"testing"

	"nfl-pickem-go/models"

	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	users map[string]*models.User
}

func (s *stubUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users[email], nil
}

func (s *stubUserRepo) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *models.User) {
	t.Helper()
	user := &models.User{ID: 1, Name: "Commissioner", Email: "admin@example.com", IsAdmin: true}
	require.NoError(t, user.HashPassword("hunter2"))

	repo := &stubUserRepo{users: map[string]*models.User{user.Email: user}}
	return NewAuthService(repo, "test-secret"), user
}

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()

	svc, user := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), user.Email, "hunter2")
	require.NoError(t, err)
	require.Equal(t, user.ID, resp.User.ID)
	require.Empty(t, resp.User.Password, "response must not carry the password hash")
	require.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.Email, claims.Email)
}

func TestAuthServiceLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	svc, user := newAuthFixture(t)

	_, err := svc.Login(context.Background(), user.Email, "wrong")
	require.Error(t, err)

	_, err = svc.Login(context.Background(), "nobody@example.com", "hunter2")
	require.Error(t, err)
}

func TestAuthServiceRejectsForeignToken(t *testing.T) {
	t.Parallel()

	svc, user := newAuthFixture(t)
	other := NewAuthService(&stubUserRepo{}, "different-secret")

	token, err := other.GenerateToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err, "token signed with another secret must not validate")
}

func TestAuthServiceGetUserFromToken(t *testing.T) {
	t.Parallel()

	svc, user := newAuthFixture(t)
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	got, err := svc.GetUserFromToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.True(t, got.IsAdmin)
}
