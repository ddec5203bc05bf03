package ports

import (
	"context"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts a user. Returns domain.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindWithCount returns the user together with the number of todos it owns.
	FindWithCount(ctx context.Context, id string) (*domain.UserWithCount, error)
	// List returns every user with its todo count, newest first.
	List(ctx context.Context) ([]domain.UserWithCount, error)
	// Update applies the non-nil fields of upd in a single write.
	Update(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error)
	// Delete removes the user document only. Owned records are removed
	// through their own repositories.
	Delete(ctx context.Context, id string) error
}

// SettingsRepository persists per-user preferences.
type SettingsRepository interface {
	// Find returns domain.ErrSettingsNotFound when the user has none yet.
	Find(ctx context.Context, userID string) (*domain.Settings, error)
	Create(ctx context.Context, s *domain.Settings) error
	Upsert(ctx context.Context, s *domain.Settings) (*domain.Settings, error)
	// Delete removes the user's settings. A missing document is not an error.
	Delete(ctx context.Context, userID string) error
}

// AuditRepository appends admin mutations to the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
