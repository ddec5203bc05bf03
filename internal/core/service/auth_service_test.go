package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

type authFixture struct {
	svc      *AuthService
	users    *stubUserRepo
	settings *stubSettingsRepo
	sessions *stubSessionStore
	tokens   *TokenService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newStubUserRepo(),
		settings: newStubSettingsRepo(),
		sessions: newStubSessionStore(),
		tokens:   NewTokenService("secret", time.Hour),
	}
	f.svc = NewAuthService(f.users, f.settings, f.sessions, f.tokens, time.Hour, zerolog.Nop())
	return f
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthFixture()

	user, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: " Alice@Example.com ", Password: "pass123",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "pass123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")))

	settings, ok := f.settings.byUser[user.ID]
	require.True(t, ok, "default settings should be created")
	assert.Equal(t, domain.DefaultAccentColor, settings.AccentColor)
	assert.True(t, settings.EmailNotifications)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	f := newAuthFixture()
	in := ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "secret1"}

	_, err := f.svc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), ports.RegisterInput{Name: "Carol", Email: "carol@example.com", Password: "s3cret"})
	require.NoError(t, err)

	res, err := f.svc.Login(context.Background(), "carol@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	claims, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	owner, err := f.sessions.Lookup(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, owner)
}

func TestAuthService_Login_Failures(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), ports.RegisterInput{Name: "Dave", Email: "dave@example.com", Password: "goodpass"})
	require.NoError(t, err)

	cases := map[string][2]string{
		"bad password":   {"dave@example.com", "badpass"},
		"unknown email":  {"ghost@example.com", "pass"},
		"empty password": {"dave@example.com", ""},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Login(context.Background(), c[0], c[1])
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
	assert.Empty(t, f.sessions.owners)
}

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), ports.RegisterInput{Name: "Erin", Email: "erin@example.com", Password: "pass123"})
	require.NoError(t, err)
	res, err := f.svc.Login(context.Background(), "erin@example.com", "pass123")
	require.NoError(t, err)
	claims, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), claims))

	_, err = f.sessions.Lookup(context.Background(), claims.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.NoError(t, f.svc.Logout(context.Background(), nil))
}
