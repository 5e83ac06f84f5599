// Copyright (c) 2026 MangaList. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangalist/api/internal/auth"
	"github.com/mangalist/api/internal/platform/apperr"
	"github.com/mangalist/api/internal/platform/sec"
)

// fakeUserRepository is an in-memory [auth.UserRepository].
type fakeUserRepository struct {
	byID map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byID: make(map[string]*auth.User)}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range f.byID {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepository) UpdateProfile(_ context.Context, user *auth.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepository) UserExists(_ context.Context, userID string) (bool, error) {
	_, ok := f.byID[userID]
	return ok, nil
}

// fakeSessionRepository is an in-memory [auth.SessionRepository] keyed by
// token hash.
type fakeSessionRepository struct {
	sessions map[string]*auth.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*auth.Session)}
}

func (f *fakeSessionRepository) Create(_ context.Context, tokenHash string, session *auth.Session) error {
	f.sessions[tokenHash] = session
	return nil
}

func (f *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	if session, ok := f.sessions[tokenHash]; ok {
		return session, nil
	}
	return nil, apperr.NotFound("Session")
}

func (f *fakeSessionRepository) Revoke(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

// staticTokenProvider returns a fixed access token string.
type staticTokenProvider struct{}

func (staticTokenProvider) GenerateAccessToken(_, _, _ string, _ time.Duration) (string, error) {
	return "signed.jwt.token", nil
}

func newTestService() (*auth.Service, *fakeUserRepository, *fakeSessionRepository) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(users, sessions, staticTokenProvider{}, logger), users, sessions
}

func register(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()
	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "akira",
		Email:    "akira@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return user
}

/*
TestRegister verifies enrollment: member role, active account, hashed
password.
*/
func TestRegister(t *testing.T) {
	service, _, _ := newTestService()

	user := register(t, service)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct-horse", user.PasswordHash))
}

/*
TestRegister_Conflicts verifies duplicate username and email both surface
as conflicts.
*/
func TestRegister_Conflicts(t *testing.T) {
	service, _, _ := newTestService()
	register(t, service)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "someone-else",
		Email:    "akira@example.com",
		Password: "password-123",
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "akira",
		Email:    "other@example.com",
		Password: "password-123",
	})
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

/*
TestLogin verifies a session is established by username or email, and
that unknown accounts and wrong passwords yield the same generic error.
*/
func TestLogin(t *testing.T) {
	service, _, sessions := newTestService()
	register(t, service)

	// By username.
	session, err := service.Login(context.Background(), auth.LoginInput{
		Login: "akira", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Len(t, sessions.sessions, 1)

	// By email.
	_, err = service.Login(context.Background(), auth.LoginInput{
		Login: "akira@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	// Wrong password and unknown account produce identical messages.
	_, badPassErr := service.Login(context.Background(), auth.LoginInput{
		Login: "akira", Password: "wrong"})
	_, unknownErr := service.Login(context.Background(), auth.LoginInput{
		Login: "nobody", Password: "wrong"})

	require.Error(t, badPassErr)
	require.Error(t, unknownErr)
	assert.Equal(t, badPassErr.Error(), unknownErr.Error())
}

/*
TestRefreshSession verifies rotation: the old token is revoked and a new
pair issued; replaying the old token fails.
*/
func TestRefreshSession(t *testing.T) {
	service, _, sessions := newTestService()
	register(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login: "akira", Password: "correct-horse"})
	require.NoError(t, err)

	rotated, err := service.RefreshSession(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)
	assert.Len(t, sessions.sessions, 1)

	// Replay of the consumed token is rejected.
	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

/*
TestLogout verifies revocation and idempotency.
*/
func TestLogout(t *testing.T) {
	service, _, sessions := newTestService()
	register(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login: "akira", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, sessions.sessions)

	// A second logout with the same token is still a success.
	assert.NoError(t, service.Logout(context.Background(), session.RefreshToken))
}

/*
TestUpdateProfile verifies partial profile updates.
*/
func TestUpdateProfile(t *testing.T) {
	service, _, _ := newTestService()
	user := register(t, service)

	bio := "Seinen enjoyer."
	updated, err := service.UpdateProfile(context.Background(), user.ID,
		auth.ProfilePatch{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "Seinen enjoyer.", *updated.Bio)
	assert.Nil(t, updated.AvatarURL)
}
