package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard/internal/api/metrics"
	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// AuthService implements registration and the session lifecycle.
type AuthService struct {
	users    ports.UserRepository
	settings ports.SettingsRepository
	sessions ports.SessionStore
	tokens   ports.TokenManager
	ttl      time.Duration
	logger   zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	settings ports.SettingsRepository,
	sessions ports.SessionStore,
	tokens ports.TokenManager,
	ttl time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		settings: settings,
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
		logger:   logger,
	}
}

// Register creates a USER account with default preferences.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := newUser(name, email, in.Password, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.settings.Create(ctx, domain.DefaultSettings(user.ID, domain.DefaultAccentColor, user.CreatedAt)); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("default settings not created")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login checks credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	sid := uuid.NewString()
	if err := s.sessions.Create(ctx, sid, user.ID, s.ttl); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, exp, err := s.tokens.Issue(user, sid)
	if err != nil {
		_ = s.sessions.Revoke(ctx, sid)
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return &ports.LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// Logout revokes the session behind claims. It is a no-op without claims.
func (s *AuthService) Logout(ctx context.Context, claims *domain.SessionClaims) error {
	if claims == nil || claims.SessionID == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, claims.SessionID)
}

func newUser(name, email, password string, role domain.Role) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
