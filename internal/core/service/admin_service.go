package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard/internal/api/metrics"
	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

const (
	recentWindow = 30 * 24 * time.Hour
	dailyWindow  = 7 * 24 * time.Hour
)

// AdminService implements user management and statistics for the admin panel.
type AdminService struct {
	users    ports.UserRepository
	todos    ports.TodoRepository
	settings ports.SettingsRepository
	sessions ports.SessionStore
	audit    ports.AuditRepository
	stats    ports.StatsRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAdminService(
	users ports.UserRepository,
	todos ports.TodoRepository,
	settings ports.SettingsRepository,
	sessions ports.SessionStore,
	audit ports.AuditRepository,
	stats ports.StatsRepository,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:    users,
		todos:    todos,
		settings: settings,
		sessions: sessions,
		audit:    audit,
		stats:    stats,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.UserWithCount, error) {
	return s.users.List(ctx)
}

func (s *AdminService) GetUser(ctx context.Context, id string) (*domain.UserWithCount, error) {
	return s.users.FindWithCount(ctx, id)
}

// CreateUser provisions an account on behalf of a superuser.
func (s *AdminService) CreateUser(ctx context.Context, actor *domain.Identity, in ports.CreateUserInput) (*domain.User, error) {
	if err := domain.AuthorizeUserCreate(actor); err != nil {
		s.countAction("create", err)
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.NewValidationError("role", "role must be one of: USER ADMIN SUPERUSER")
	}

	user, err := newUser(strings.TrimSpace(in.Name), normalizeEmail(in.Email), in.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.countAction("create", err)
		return nil, err
	}
	if err := s.settings.Create(ctx, domain.DefaultSettings(user.ID, domain.AdminAccentColor, user.CreatedAt)); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("default settings not created")
	}

	s.record(ctx, actor.ID, domain.AuditUserCreated, user.ID, map[string]string{"role": string(role)})
	s.countAction("create", nil)
	return user, nil
}

// UpdateUser applies upd to the user identified by id after checking the
// admin edit rules against the stored target.
func (s *AdminService) UpdateUser(ctx context.Context, actor *domain.Identity, id string, upd domain.UserUpdate) (*domain.User, error) {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.AuthorizeUserUpdate(actor, target, upd); err != nil {
		s.countAction("update", err)
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		upd.Name = &name
	}
	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		upd.Email = &email
		if email != target.Email {
			existing, err := s.users.FindByEmail(ctx, email)
			switch {
			case err == nil && existing.ID != target.ID:
				return nil, domain.ErrEmailTaken
			case err != nil && !errors.Is(err, domain.ErrUserNotFound):
				return nil, err
			}
		}
	}
	if upd.Empty() {
		return target, nil
	}

	updated, err := s.users.Update(ctx, id, upd)
	if err != nil {
		s.countAction("update", err)
		return nil, err
	}

	action := domain.AuditUserUpdated
	details := map[string]string{}
	if upd.RoleChanged(target.Role) {
		action = domain.AuditRoleChanged
		details["from"] = string(target.Role)
		details["to"] = string(*upd.Role)
	}
	s.record(ctx, actor.ID, action, id, details)
	s.countAction("update", nil)
	return updated, nil
}

// DeleteUser removes everything the user owns, then the user, then ends its
// sessions. The account goes last so a failed cascade can be retried.
func (s *AdminService) DeleteUser(ctx context.Context, actor *domain.Identity, id string) (*ports.DeletedUser, error) {
	if err := domain.AuthorizeUserDelete(actor, id); err != nil {
		s.countAction("delete", err)
		return nil, err
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.todos.DeleteByUser(ctx, id); err != nil {
		s.countAction("delete", err)
		return nil, err
	}
	if err := s.settings.Delete(ctx, id); err != nil {
		s.countAction("delete", err)
		return nil, err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		s.countAction("delete", err)
		return nil, err
	}
	if err := s.sessions.RevokeAll(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("sessions not revoked after delete")
	}

	s.record(ctx, actor.ID, domain.AuditUserDeleted, id, map[string]string{"email": target.Email})
	s.countAction("delete", nil)
	return &ports.DeletedUser{ID: target.ID, Email: target.Email, Role: target.Role}, nil
}

// Stats collects the admin dashboard figures and derives the system ratios.
func (s *AdminService) Stats(ctx context.Context) (*domain.AdminStats, error) {
	now := s.now().UTC()
	stats, err := s.stats.Collect(ctx, now.Add(-recentWindow), now.Add(-dailyWindow))
	if err != nil {
		return nil, err
	}

	stats.Todos.Pending = stats.Todos.Total - stats.Todos.Completed
	if stats.Todos.Total > 0 {
		stats.System.CompletionRate = int64(math.Round(float64(stats.Todos.Completed) / float64(stats.Todos.Total) * 100))
	}
	if stats.Users.Total > 0 {
		stats.System.AverageTodosPerUser = int64(math.Round(float64(stats.Todos.Total) / float64(stats.Users.Total)))
	}
	return stats, nil
}

// cliActor is the audit actor for accounts provisioned from the command line.
const cliActor = "cli"

// ProvisionSuperuser creates a SUPERUSER account, or promotes the existing
// account with that email when promote is set. It backs the operator CLI and
// bypasses the actor checks.
func (s *AdminService) ProvisionSuperuser(ctx context.Context, name, email, password string, promote bool) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.NewValidationError("email", "Email is required")
	}
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if !promote {
			return nil, domain.ErrEmailTaken
		}
		role := domain.RoleSuperuser
		updated, err := s.users.Update(ctx, existing.ID, domain.UserUpdate{Role: &role})
		if err != nil {
			return nil, err
		}
		s.record(ctx, cliActor, domain.AuditRoleChanged, existing.ID, map[string]string{
			"from": string(existing.Role),
			"to":   string(role),
		})
		return updated, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := validateAccount(name, password); err != nil {
		return nil, err
	}
	user, err := newUser(name, email, password, domain.RoleSuperuser)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.settings.Create(ctx, domain.DefaultSettings(user.ID, domain.SuperuserAccentColor, user.CreatedAt)); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("default settings not created")
	}
	s.record(ctx, cliActor, domain.AuditUserCreated, user.ID, map[string]string{"role": string(domain.RoleSuperuser)})
	return user, nil
}

// validateAccount applies the registration rules to a provisioned account.
func validateAccount(name, password string) error {
	var fields []domain.FieldError
	if utf8.RuneCountInString(name) < 2 {
		fields = append(fields, domain.FieldError{Field: "name", Message: "Name must be at least 2 characters"})
	}
	if len(password) < 6 {
		fields = append(fields, domain.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// record appends to the audit trail. A failed write is logged, not returned.
func (s *AdminService) record(ctx context.Context, actorID, action, targetID string, details map[string]string) {
	entry := &domain.AuditEntry{
		ActorID:  actorID,
		Action:   action,
		TargetID: targetID,
		Details:  details,
		At:       s.now().UTC(),
	}
	if err := s.audit.Insert(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("action", action).Str("target_id", targetID).Msg("audit insert failed")
	}
}

func (s *AdminService) countAction(action string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrForbidden):
		result = "forbidden"
	case errors.Is(err, domain.ErrSelfAction):
		result = "self"
	default:
		result = "error"
	}
	metrics.AdminActionsTotal.WithLabelValues(action, result).Inc()
}
