package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard/internal/api/metrics"
	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

const (
	defaultTodoPageSize = 9
	maxTodoPageSize     = 100
)

// TodoService implements the per-user todo use cases.
type TodoService struct {
	repo   ports.TodoRepository
	logger zerolog.Logger
}

func NewTodoService(repo ports.TodoRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, logger: logger}
}

func (s *TodoService) Create(ctx context.Context, userID string, in ports.CreateTodoInput) (*domain.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewValidationError("title", "Title is required")
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	todo := &domain.Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: in.Description,
		Priority:    priority,
		DueDate:     in.DueDate,
		Tags:        in.Tags,
		Image:       in.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}

	metrics.TodosCreatedTotal.WithLabelValues(string(priority)).Inc()
	return todo, nil
}

// List returns one page of the caller's todos.
func (s *TodoService) List(ctx context.Context, userID string, in ports.ListTodosInput) (*ports.TodoPage, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	filter := in.Filter
	if filter == "" {
		filter = domain.TodoFilterAll
	}

	todos, total, err := s.repo.List(ctx, ports.ListTodosFilter{
		UserID: userID,
		Search: strings.TrimSpace(in.Search),
		Filter: filter,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.TodoPage{
		Todos:           todos,
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalCount:      total,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}, nil
}

func (s *TodoService) Get(ctx context.Context, userID, id string) (*domain.Todo, error) {
	return s.owned(ctx, userID, id)
}

func (s *TodoService) Update(ctx context.Context, userID, id string, patch domain.TodoPatch) (*domain.Todo, error) {
	todo, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, domain.NewValidationError("title", "Title is required")
	}

	patch.Apply(todo)
	todo.UpdatedAt = time.Now().UTC()
	if err := s.repo.Replace(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *TodoService) Summary(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	return s.repo.Summary(ctx, userID)
}

// owned loads a todo and checks that userID owns it. A missing todo is
// ErrTodoNotFound, someone else's is ErrForbidden.
func (s *TodoService) owned(ctx context.Context, userID, id string) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo.UserID != userID {
		s.logger.Warn().Str("user_id", userID).Str("todo_id", id).Msg("todo access by non-owner")
		return nil, &domain.ForbiddenError{Reason: "Unauthorized"}
	}
	return todo, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultTodoPageSize
	}
	if limit > maxTodoPageSize {
		limit = maxTodoPageSize
	}
	return page, limit
}
