// Copyright (c) 2026 MangaList. All rights reserved.

/*
Package auth implements identity and access management for MangaList.

It handles user registration, secure password hashing, and the session
lifecycle built on RS256 JWT access tokens plus opaque refresh tokens
whose hashes key Redis-stored sessions.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Refresh).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Sessions).
  - Security: Bcrypt password hashing and RSA-signed JWTs.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mangalist/api/internal/platform/apperr"
	"github.com/mangalist/api/internal/platform/constants"
	"github.com/mangalist/api/internal/platform/sec"
	"github.com/mangalist/api/internal/platform/validate"
	"github.com/mangalist/api/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating signed access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		logger:            logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Checks both identity columns for conflicts before hashing,
then persists a member-role account. Time-sortable IDs keep the primary
key index append-mostly.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	// Verify email uniqueness. Return a client-safe Conflict error.
	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict error.
	if _, err := service.userRepository.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleMember,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Username or Email
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

Description: Looks the account up by email or username, verifies the
password with bcrypt's constant-time comparison, and establishes a fresh
session. Unknown accounts and wrong passwords produce the same generic
Unauthorized to prevent account enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Flexible login: look up by Email or Username
	user, err := service.userRepository.FindByEmail(context, strings.ToLower(input.Login))
	if err != nil {
		user, err = service.userRepository.FindByUsername(context, input.Login)
	}

	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.establishSession(context, user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))

	return session, nil
}

/*
Logout permanently revokes the presented refresh session.

Description: Idempotent — an already-revoked or unknown token is treated
as a successful logout.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	tokenHash := sec.HashToken(refreshToken)

	if _, err := service.sessionRepository.FindByTokenHash(context, tokenHash); err != nil {
		return nil
	}

	if err := service.sessionRepository.Revoke(context, tokenHash); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements the refresh token rotation mechanism.

Description: Verifies the existing refresh token, revokes it so it can
never be replayed, and issues a fresh pair of rotated tokens.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *LoginSession: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*LoginSession, error) {

	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: revoke the old session to prevent replay.
	if err := service.sessionRepository.Revoke(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	newSession, err := service.establishSession(context, user)
	if err != nil {
		return nil, err
	}

	service.logger.Debug("session_refreshed", slog.String("user_id", user.ID))

	return newSession, nil
}

// establishSession issues an access/refresh token pair and persists the
// refresh session.
func (service *Service) establishSession(context context.Context, user *User) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(constants.RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(constants.RefreshTokenTTL)

	session := &Session{
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := service.sessionRepository.Create(context, sec.HashToken(refreshToken), session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Profile Management

// ProfilePatch carries a partial profile update; nil fields are left
// untouched.
type ProfilePatch struct {
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar"`
}

/*
GetProfile returns the authenticated user's account.

Parameters:
  - context: context.Context
  - userID: string (From the access token)

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (service *Service) GetProfile(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

/*
UpdateProfile applies bio and avatar changes to the caller's account.

Parameters:
  - context: context.Context
  - userID: string
  - patch: ProfilePatch

Returns:
  - *User: The updated account
  - error: Validation, not-found, or persistence errors
*/
func (service *Service) UpdateProfile(context context.Context, userID string, patch ProfilePatch) (*User, error) {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}

	if patch.Bio != nil {
		validator.MaxLen(FieldBio, *patch.Bio, 1000)
		user.Bio = patch.Bio
	}
	if patch.AvatarURL != nil {
		validator.MaxLen(FieldAvatar, *patch.AvatarURL, 500)
		user.AvatarURL = patch.AvatarURL
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user.UpdatedAt = time.Now().UTC()

	if err := service.userRepository.UpdateProfile(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("profile_updated", slog.String("user_id", userID))

	return user, nil
}
