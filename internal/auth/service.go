// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/internal/platform/constants"
	"github.com/tripmesh/tripmesh/internal/platform/sec"
	"github.com/tripmesh/tripmesh/internal/platform/validate"
)

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an error if signing fails.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements identity use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed with extra care.
type Service struct {
	userRepository  UserRepository
	resetRepository ResetTokenRepository
	tokenProvider   TokenProvider
	logger          *slog.Logger
}

// NewService constructs a new identity [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	resetRepo ResetTokenRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:  userRepo,
		resetRepository: resetRepo,
		tokenProvider:   tokenProv,
		logger:          logger,
	}
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register validates, hashes, and persists a brand new user account.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: The user-provided registration details.
//
// # Returns
//   - A pointer to the newly created [*User].
//   - Returns [apperr.Conflict] if email or username already exists.
//
// # Business Rules
//   - Emails must be unique.
//   - Usernames must be unique.
//   - Default role is always 'USER'.
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	// ── 1. Boundary Validation ────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.Required("username", input.Username).MinLen("username", input.Username, 3).MaxLen("username", input.Username, 50)
	validator.Required("email", input.Email).Email("email", input.Email)
	validator.Required("password", input.Password).MinLen("password", input.Password, 8)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Uniqueness Checks ──────────────────────────────────────────────

	// Verify username uniqueness. Return a client-safe Conflict error.
	// The normalized-pair of pre-check plus DB unique constraint handles
	// the race between two concurrent registrations.
	_, err := service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err = service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 4. Entity Construction & Persistence ──────────────────────────────

	user := NewUser(input.Username, input.Email, hashedPassword)

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

// LoginResult represents a successfully authenticated login.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *User
}

// Login validates user credentials and issues an access token.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: Contains Login (Email/Username) and plain-text Password.
//
// # Returns
//   - A pointer to [LoginResult] containing the AccessToken.
//   - Returns [apperr.Unauthorized] if credentials do not match.
//
// # Flow
//  1. Lookup user by login (email or username).
//  2. Verify password hash using Bcrypt.
//  3. Generate a one-hour JWT access token.
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	var user *User
	var err error

	// ── 1. Fetch User Profile ─────────────────────────────────────────────

	// We support flexible login, allowing the user to use either Email or Username.
	user, err = service.userRepository.FindByEmail(context, input.Login)
	if err != nil {
		user, err = service.userRepository.FindByUsername(context, input.Login)
	}

	// Return generic unauthorized error to prevent username enumeration attacks.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 2. Security Verification ──────────────────────────────────────────

	// Bcrypt performs a constant-time comparison internally.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────

	expiresAt := time.Now().Add(constants.AccessTokenTTL)
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginResult{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// GetProfile returns the full account record for the given user ID.
//
// Returns [apperr.NotFound] if the account does not exist.
func (service *Service) GetProfile(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// UpdateProfileInput holds the mutable profile fields. Nil means "unchanged".
type UpdateProfileInput struct {
	Username *string
	Email    *string
}

// UpdateProfile applies partial changes to the caller's own account.
//
// # Business Rules
//   - Username/email uniqueness is re-checked when the value actually changes.
//   - Passwords are never updated through this path.
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*User, error) {
	// ── 1. Fetch Current State ────────────────────────────────────────────

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// ── 2. Apply & Validate Changes ───────────────────────────────────────

	validator := &validate.Validator{}

	if input.Username != nil && *input.Username != user.Username {
		validator.Required("username", *input.Username).MinLen("username", *input.Username, 3).MaxLen("username", *input.Username, 50)
		if validator.HasErrors() {
			return nil, validator.Err()
		}
		if _, lookupErr := service.userRepository.FindByUsername(context, *input.Username); lookupErr == nil {
			return nil, apperr.Conflict("Username is already taken")
		}
		user.Username = *input.Username
	}

	if input.Email != nil && *input.Email != user.Email {
		validator.Required("email", *input.Email).Email("email", *input.Email)
		if validator.HasErrors() {
			return nil, validator.Err()
		}
		if _, lookupErr := service.userRepository.FindByEmail(context, *input.Email); lookupErr == nil {
			return nil, apperr.Conflict("Email is already registered")
		}
		user.Email = *input.Email
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_update_profile_failed: %w", err)
	}

	return user, nil
}

// DeleteAccount permanently removes the caller's account and, via FK
// cascades, every trip it organizes and every buddy row it appears in.
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if _, err := service.userRepository.FindByID(context, userID); err != nil {
		return err
	}

	if err := service.userRepository.Delete(context, userID); err != nil {
		return fmt.Errorf("auth_service_delete_account_failed: %w", err)
	}

	service.logger.Warn("user_deleted", slog.String("user_id", userID))
	return nil
}

// ListUsers returns a page of all accounts. Restricted to admins at the
// HTTP boundary.
func (service *Service) ListUsers(context context.Context, limit, offset int) ([]*User, int, error) {
	return service.userRepository.List(context, limit, offset)
}

// RequestPasswordReset issues a single-use reset token for the account
// registered under the given email.
//
// # Returns
//   - The plain-text token intended for out-of-band delivery.
//
// # Security Concept
//
// Only the SHA-256 hash of the token is stored (Redis, 15 min TTL); a storage
// compromise alone does not allow password takeover. An unknown email returns
// NotFound to the caller of this method; the HTTP layer flattens this into a
// generic 204 to avoid account enumeration.
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	// ── 1. Account Lookup ─────────────────────────────────────────────────

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return "", err
	}

	// ── 2. Token Issuance ─────────────────────────────────────────────────

	token, err := sec.GenerateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("auth_service_reset_token_failed: %w", err)
	}

	if err := service.resetRepository.Set(context, sec.HashToken(token), user.ID, constants.ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_reset_store_failed: %w", err)
	}

	service.logger.Info("password_reset_requested", slog.String("user_id", user.ID))
	return token, nil
}

// ResetPassword consumes a reset token and replaces the account password.
//
// The token is deleted on success so it can never be replayed.
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	// ── 1. Validation ─────────────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.Required("password", newPassword).MinLen("password", newPassword, 8)
	if err := validator.Err(); err != nil {
		return err
	}

	// ── 2. Token Verification ─────────────────────────────────────────────

	tokenHash := sec.HashToken(token)
	userID, err := service.resetRepository.Get(context, tokenHash)
	if err != nil {
		return apperr.Unauthorized("Invalid or expired reset token")
	}

	// ── 3. Password Replacement ───────────────────────────────────────────

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, newHash); err != nil {
		return fmt.Errorf("auth_service_reset_update_failed: %w", err)
	}

	// ── 4. Single-Use Guarantee ───────────────────────────────────────────

	if err := service.resetRepository.Delete(context, tokenHash); err != nil {
		return fmt.Errorf("auth_service_reset_consume_failed: %w", err)
	}

	service.logger.Info("password_reset_completed", slog.String("user_id", userID))
	return nil
}
