package service

import (
	"context"
	"testing"

	"notelite-be/internal/config"
	"notelite-be/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServiceFixture() (IAuthService, *mockUserRepo) {
	userRepo := &mockUserRepo{}
	factory := &mockFactory{uow: &mockUow{noteRepo: &mockNoteRepo{}, userRepo: userRepo}}
	authCfg := config.AuthConfig{JwtSecret: "test-secret", TokenTTLHours: 24}
	return NewAuthService(factory, authCfg, nil, nopLogger{}), userRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthServiceFixture()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
		FullName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", reg.Email)

	res, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	assert.Equal(t, reg.Id, res.User.Id)

	// Token must be HS256-signed with our secret and carry user_id
	token, err := jwt.Parse(res.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, reg.Id.String(), claims["user_id"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthServiceFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "bob@example.com",
		Password: "password123",
		FullName: "Bob",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Email:    "bob@example.com",
		Password: "otherpassword",
		FullName: "Bob Again",
	})
	require.Error(t, err)
	assert.Equal(t, "email already registered", err.Error())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthServiceFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "carol@example.com",
		Password: "password123",
		FullName: "Carol",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "carol@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestPasswordsAreNotStoredInPlaintext(t *testing.T) {
	svc, userRepo := newAuthServiceFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "dave@example.com",
		Password: "password123",
		FullName: "Dave",
	})
	require.NoError(t, err)

	require.Len(t, userRepo.users, 1)
	assert.NotContains(t, userRepo.users[0].PasswordHash, "password123")
}
