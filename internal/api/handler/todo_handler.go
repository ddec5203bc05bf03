package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// TodoHandler handles the caller's own todos.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// --- Request / Response types ---

type createTodoRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     string `json:"dueDate"`
	Tags        string `json:"tags"`
	Image       string `json:"image" validate:"omitempty,avatar"`
}

type updateTodoRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *string `json:"dueDate"`
	Tags        *string `json:"tags"`
	Image       *string `json:"image" validate:"omitempty,avatar"`
	Completed   *bool   `json:"completed"`
}

type paginationResponse struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalCount      int64 `json:"totalCount"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

type listTodosResponse struct {
	Todos      []*domain.Todo     `json:"todos"`
	Pagination paginationResponse `json:"pagination"`
}

// List handles GET /api/todos.
//
// @Summary      List the caller's todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 9, max 100)"
// @Param        search  query     string  false  "Matches title, description or tags"
// @Param        filter  query     string  false  "all | completed | pending"
// @Success      200     {object}  listTodosResponse
// @Failure      400     {object}  messageResponse
// @Router       /api/todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	filter := domain.TodoFilter(c.QueryParam("filter"))
	switch filter {
	case "", domain.TodoFilterAll, domain.TodoFilterCompleted, domain.TodoFilterPending:
	default:
		return domain.NewValidationError("filter", "filter must be one of: all completed pending")
	}

	page, err := h.service.List(c.Request().Context(), user.ID, ports.ListTodosInput{
		Search: c.QueryParam("search"),
		Filter: filter,
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listTodosResponse{
		Todos: page.Todos,
		Pagination: paginationResponse{
			CurrentPage:     page.CurrentPage,
			TotalPages:      page.TotalPages,
			TotalCount:      page.TotalCount,
			HasNextPage:     page.HasNextPage,
			HasPreviousPage: page.HasPreviousPage,
		},
	})
}

// Create handles POST /api/todos.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTodoRequest  true  "Todo"
// @Success      201   {object}  domain.Todo
// @Failure      400   {object}  messageResponse
// @Router       /api/todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTodoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return err
	}

	todo, err := h.service.Create(c.Request().Context(), user.ID, ports.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		DueDate:     due,
		Tags:        req.Tags,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, todo)
}

// Get handles GET /api/todos/:id.
//
// @Summary      Get a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Todo ID"
// @Success      200  {object}  domain.Todo
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	todo, err := h.service.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todo)
}

// Update handles PATCH /api/todos/:id. Only the fields present in the body
// change; an empty dueDate clears it.
//
// @Summary      Update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Todo ID"
// @Param        body  body      updateTodoRequest  true  "Fields to change"
// @Success      200   {object}  domain.Todo
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/todos/{id} [patch]
func (h *TodoHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateTodoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := domain.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Image:       req.Image,
		Completed:   req.Completed,
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		patch.Priority = &p
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return err
		}
		patch.DueDate = due
		patch.ClearDueDate = due == nil
	}

	todo, err := h.service.Update(c.Request().Context(), user.ID, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todo)
}

// Delete handles DELETE /api/todos/:id.
//
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Todo ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Todo deleted successfully"})
}

// Summary handles GET /api/dashboard/summary.
//
// @Summary      Dashboard counters
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DashboardSummary
// @Router       /api/dashboard/summary [get]
func (h *TodoHandler) Summary(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Summary(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// queryInt returns 0 for a missing or malformed parameter; the service applies defaults.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}

// parseDueDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates. An
// empty string means no due date.
func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.NewValidationError("dueDate", "Due date must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
}
