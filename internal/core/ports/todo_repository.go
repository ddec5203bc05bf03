package ports

import (
	"context"
	"time"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// ListTodosFilter carries all query parameters for listing todos.
// UserID is always set by the service layer.
type ListTodosFilter struct {
	UserID string
	Search string // optional: partial match on title, description or tags
	Filter domain.TodoFilter
	Page   int // 1-based
	Limit  int
}

// TodoRepository defines persistence operations for todos.
type TodoRepository interface {
	Create(ctx context.Context, t *domain.Todo) error
	FindByID(ctx context.Context, id string) (*domain.Todo, error)
	// List returns a page of todos matching filter, newest first, and the total count.
	List(ctx context.Context, filter ListTodosFilter) ([]*domain.Todo, int64, error)
	// Replace overwrites the stored todo with t.
	Replace(ctx context.Context, t *domain.Todo) error
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes every todo owned by userID.
	DeleteByUser(ctx context.Context, userID string) error
	Summary(ctx context.Context, userID string) (*domain.DashboardSummary, error)
}

// StatsRepository computes the raw aggregates behind the admin dashboard.
type StatsRepository interface {
	// Collect fills every count-based field of AdminStats. recentSince bounds
	// the "recent" counters and dailySince the per-day histograms.
	Collect(ctx context.Context, recentSince, dailySince time.Time) (*domain.AdminStats, error)
}
