package ports

import (
	"context"
	"io"
	"time"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// CreateTodoInput carries the fields of a new todo.
type CreateTodoInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	DueDate     *time.Time
	Tags        string
	Image       string
}

// ListTodosInput carries the list endpoint query.
type ListTodosInput struct {
	Search string
	Filter domain.TodoFilter
	Page   int
	Limit  int
}

// TodoPage is one page of todos plus navigation metadata.
type TodoPage struct {
	Todos           []*domain.Todo
	CurrentPage     int
	TotalPages      int
	TotalCount      int64
	HasNextPage     bool
	HasPreviousPage bool
}

// TodoService implements per-user todo management. Every method is scoped to
// the owner passed as userID.
type TodoService interface {
	Create(ctx context.Context, userID string, in CreateTodoInput) (*domain.Todo, error)
	List(ctx context.Context, userID string, in ListTodosInput) (*TodoPage, error)
	Get(ctx context.Context, userID, id string) (*domain.Todo, error)
	Update(ctx context.Context, userID, id string, patch domain.TodoPatch) (*domain.Todo, error)
	Delete(ctx context.Context, userID, id string) error
	Summary(ctx context.Context, userID string) (*domain.DashboardSummary, error)
}

// ProfileService manages the caller's own account details.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, name, image *string) (*domain.User, error)
}

// SettingsService manages the caller's preferences.
type SettingsService interface {
	// Preferences returns the stored settings, creating defaults on first use.
	Preferences(ctx context.Context, userID string) (*domain.Settings, error)
	Update(ctx context.Context, userID, accentColor string, emailNotifications bool) (*domain.Settings, error)
}

// UploadInput describes a single uploaded file.
type UploadInput struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// UploadService validates and stores avatar images.
type UploadService interface {
	Upload(ctx context.Context, in UploadInput) (string, error)
}
