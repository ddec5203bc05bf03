package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard/internal/api/metrics"
	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// IdentityService resolves the caller of a request. The role always comes
// from the user record, never from the token.
type IdentityService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewIdentityService(users ports.UserRepository, sessions ports.SessionStore, log zerolog.Logger) *IdentityService {
	return &IdentityService{users: users, sessions: sessions, log: log}
}

// Current returns the live identity behind claims, or nil. Lookup failures
// deny rather than propagate.
func (s *IdentityService) Current(ctx context.Context, claims *domain.SessionClaims) *domain.Identity {
	if claims == nil || claims.UserID == "" {
		return nil
	}

	owner, err := s.sessions.Lookup(ctx, claims.SessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			s.log.Error().Err(err).Str("user_id", claims.UserID).Msg("session lookup failed")
		}
		return nil
	}
	if owner != claims.UserID {
		s.log.Warn().Str("user_id", claims.UserID).Msg("session owner mismatch")
		return nil
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Err(err).Str("user_id", claims.UserID).Msg("identity lookup failed")
		}
		return nil
	}
	return domain.IdentityOf(user)
}

// GuardService implements the role guard on top of an IdentityResolver.
type GuardService struct {
	identity ports.IdentityResolver
}

func NewGuardService(identity ports.IdentityResolver) *GuardService {
	return &GuardService{identity: identity}
}

// RequireRole resolves the caller and compares its current role to required.
func (g *GuardService) RequireRole(ctx context.Context, claims *domain.SessionClaims, required domain.Role) domain.Decision {
	user := g.identity.Current(ctx, claims)
	if user == nil {
		metrics.AuthzDecisionsTotal.WithLabelValues(string(required), "unauthenticated").Inc()
		return domain.Decision{}
	}

	d := domain.Decision{Authorized: domain.HasRole(user.Role, required), User: user}
	outcome := "denied"
	if d.Authorized {
		outcome = "allowed"
	}
	metrics.AuthzDecisionsTotal.WithLabelValues(string(required), outcome).Inc()
	return d
}

func (g *GuardService) CheckIsAdmin(ctx context.Context, claims *domain.SessionClaims) bool {
	return g.RequireRole(ctx, claims, domain.RoleAdmin).Authorized
}

func (g *GuardService) CheckIsSuperuser(ctx context.Context, claims *domain.SessionClaims) bool {
	return g.RequireRole(ctx, claims, domain.RoleSuperuser).Authorized
}
