// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/tripmesh/internal/auth"
	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/internal/platform/sec"
	"github.com/tripmesh/tripmesh/pkg/pointer"
)

// memoryUserRepository is an in-memory [auth.UserRepository] for service tests.
type memoryUserRepository struct {
	users map[string]*auth.User // keyed by ID
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*auth.User)}
}

func (repo *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repo.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepository) List(_ context.Context, limit, offset int) ([]*auth.User, int, error) {
	all := make([]*auth.User, 0, len(repo.users))
	for _, user := range repo.users {
		all = append(all, user)
	}
	return all, len(all), nil
}

func (repo *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *memoryUserRepository) Update(_ context.Context, user *auth.User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *memoryUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	if user, ok := repo.users[userID]; ok {
		user.PasswordHash = newHash
		return nil
	}
	return apperr.NotFound("User")
}

func (repo *memoryUserRepository) Delete(_ context.Context, id string) error {
	delete(repo.users, id)
	return nil
}

// memoryResetRepository is an in-memory [auth.ResetTokenRepository].
type memoryResetRepository struct {
	tokens map[string]string
}

func newMemoryResetRepository() *memoryResetRepository {
	return &memoryResetRepository{tokens: make(map[string]string)}
}

func (repo *memoryResetRepository) Set(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	repo.tokens[tokenHash] = userID
	return nil
}

func (repo *memoryResetRepository) Get(_ context.Context, tokenHash string) (string, error) {
	if userID, ok := repo.tokens[tokenHash]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Reset token")
}

func (repo *memoryResetRepository) Delete(_ context.Context, tokenHash string) error {
	delete(repo.tokens, tokenHash)
	return nil
}

// staticTokenProvider returns a fixed token string and records the TTL used.
type staticTokenProvider struct {
	lastTTL time.Duration
}

func (provider *staticTokenProvider) GenerateAccessToken(_, _, _ string, timeToLive time.Duration) (string, error) {
	provider.lastTTL = timeToLive
	return "signed-token", nil
}

func newTestService() (*auth.Service, *memoryUserRepository, *memoryResetRepository, *staticTokenProvider) {
	userRepo := newMemoryUserRepository()
	resetRepo := newMemoryResetRepository()
	tokenProvider := &staticTokenProvider{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return auth.NewService(userRepo, resetRepo, tokenProvider, logger), userRepo, resetRepo, tokenProvider
}

/*
TestService_Register verifies account creation rules: defaults, hashing,
and uniqueness conflicts.
*/
func TestService_Register(t *testing.T) {
	ctx := context.Background()
	service, _, _, _ := newTestService()

	user, err := service.Register(ctx, auth.RegisterInput{
		Username: "wanderer",
		Email:    "wanderer@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleUser, user.Role, "new accounts always start as USER")
	assert.NotEqual(t, "supersecret1", user.PasswordHash, "password must never be stored in plain text")
	assert.True(t, sec.CheckPasswordHash("supersecret1", user.PasswordHash))

	t.Run("duplicate_username", func(t *testing.T) {
		_, err := service.Register(ctx, auth.RegisterInput{
			Username: "wanderer",
			Email:    "other@example.com",
			Password: "supersecret1",
		})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		_, err := service.Register(ctx, auth.RegisterInput{
			Username: "someone_else",
			Email:    "wanderer@example.com",
			Password: "supersecret1",
		})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

/*
TestService_Register_Validation rejects malformed registrations before any
repository access.
*/
func TestService_Register_Validation(t *testing.T) {
	ctx := context.Background()
	service, _, _, _ := newTestService()

	tests := []struct {
		name  string
		input auth.RegisterInput
	}{
		{"short_username", auth.RegisterInput{Username: "ab", Email: "a@example.com", Password: "supersecret1"}},
		{"bad_email", auth.RegisterInput{Username: "wanderer", Email: "nope", Password: "supersecret1"}},
		{"short_password", auth.RegisterInput{Username: "wanderer", Email: "a@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_Login covers both login identifiers, the one-hour token TTL,
and the indistinguishable failure modes.
*/
func TestService_Login(t *testing.T) {
	ctx := context.Background()
	service, _, _, tokenProvider := newTestService()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "wanderer",
		Email:    "wanderer@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	t.Run("by_email", func(t *testing.T) {
		result, err := service.Login(ctx, auth.LoginInput{Login: "wanderer@example.com", Password: "supersecret1"})
		require.NoError(t, err)
		assert.Equal(t, "signed-token", result.AccessToken)
		assert.Equal(t, time.Hour, tokenProvider.lastTTL)
	})

	t.Run("by_username", func(t *testing.T) {
		result, err := service.Login(ctx, auth.LoginInput{Login: "wanderer", Password: "supersecret1"})
		require.NoError(t, err)
		assert.Equal(t, "wanderer", result.User.Username)
	})

	t.Run("wrong_password_matches_unknown_user", func(t *testing.T) {
		_, wrongPassErr := service.Login(ctx, auth.LoginInput{Login: "wanderer", Password: "incorrect1"})
		_, unknownUserErr := service.Login(ctx, auth.LoginInput{Login: "ghost", Password: "supersecret1"})

		require.Error(t, wrongPassErr)
		require.Error(t, unknownUserErr)
		assert.Equal(t, wrongPassErr.Error(), unknownUserErr.Error(),
			"failure messages must not reveal whether the account exists")
		assert.Equal(t, "UNAUTHORIZED", apperr.As(wrongPassErr).Code)
	})
}

/*
TestService_UpdateProfile verifies partial updates and uniqueness re-checks.
*/
func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	service, _, _, _ := newTestService()

	first, err := service.Register(ctx, auth.RegisterInput{Username: "wanderer", Email: "wanderer@example.com", Password: "supersecret1"})
	require.NoError(t, err)
	_, err = service.Register(ctx, auth.RegisterInput{Username: "nomad", Email: "nomad@example.com", Password: "supersecret1"})
	require.NoError(t, err)

	t.Run("rename", func(t *testing.T) {
		updated, err := service.UpdateProfile(ctx, first.ID, auth.UpdateProfileInput{Username: pointer.To("globetrotter")})
		require.NoError(t, err)
		assert.Equal(t, "globetrotter", updated.Username)
		assert.Equal(t, "wanderer@example.com", updated.Email, "unset fields stay untouched")
	})

	t.Run("taken_username", func(t *testing.T) {
		_, err := service.UpdateProfile(ctx, first.ID, auth.UpdateProfileInput{Username: pointer.To("nomad")})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("taken_email", func(t *testing.T) {
		_, err := service.UpdateProfile(ctx, first.ID, auth.UpdateProfileInput{Email: pointer.To("nomad@example.com")})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

/*
TestService_PasswordReset walks the full reset round-trip and checks the
single-use guarantee.
*/
func TestService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	service, _, _, _ := newTestService()

	user, err := service.Register(ctx, auth.RegisterInput{Username: "wanderer", Email: "wanderer@example.com", Password: "supersecret1"})
	require.NoError(t, err)

	token, err := service.RequestPasswordReset(ctx, "wanderer@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, service.ResetPassword(ctx, token, "freshsecret2"))

	result, err := service.Login(ctx, auth.LoginInput{Login: user.Email, Password: "freshsecret2"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)

	t.Run("token_is_single_use", func(t *testing.T) {
		err := service.ResetPassword(ctx, token, "anothersecret3")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, err := service.RequestPasswordReset(ctx, "ghost@example.com")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestService_DeleteAccount verifies hard deletion of a profile.
*/
func TestService_DeleteAccount(t *testing.T) {
	ctx := context.Background()
	service, _, _, _ := newTestService()

	user, err := service.Register(ctx, auth.RegisterInput{Username: "wanderer", Email: "wanderer@example.com", Password: "supersecret1"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteAccount(ctx, user.ID))

	_, err = service.GetProfile(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	t.Run("missing_account", func(t *testing.T) {
		err := service.DeleteAccount(ctx, user.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}
