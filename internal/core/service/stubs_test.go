package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	todoCount map[string]int64
	findErr   error
	deleted   []string
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User), todoCount: make(map[string]int64)}
	for _, u := range users {
		r.users[u.ID] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindWithCount(ctx context.Context, id string) (*domain.UserWithCount, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.UserWithCount{User: *u, TodoCount: r.todoCount[id]}, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.UserWithCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.UserWithCount, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, domain.UserWithCount{User: *u, TodoCount: r.todoCount[u.ID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.Image != nil {
		u.Image = *upd.Image
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubSettingsRepo struct {
	byUser    map[string]*domain.Settings
	deleteErr error
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{byUser: make(map[string]*domain.Settings)}
}

func (r *stubSettingsRepo) Find(_ context.Context, userID string) (*domain.Settings, error) {
	s, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrSettingsNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSettingsRepo) Create(_ context.Context, s *domain.Settings) error {
	clone := *s
	r.byUser[s.UserID] = &clone
	return nil
}

func (r *stubSettingsRepo) Upsert(_ context.Context, s *domain.Settings) (*domain.Settings, error) {
	if existing, ok := r.byUser[s.UserID]; ok {
		existing.AccentColor = s.AccentColor
		existing.EmailNotifications = s.EmailNotifications
		existing.UpdatedAt = s.UpdatedAt
		clone := *existing
		return &clone, nil
	}
	clone := *s
	r.byUser[s.UserID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSettingsRepo) Delete(_ context.Context, userID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.byUser, userID)
	return nil
}

type stubSessionStore struct {
	owners    map[string]string
	lookupErr error
	revoked   []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{owners: make(map[string]string)}
}

func (s *stubSessionStore) Create(_ context.Context, sid, uid string, _ time.Duration) error {
	s.owners[sid] = uid
	return nil
}

func (s *stubSessionStore) Lookup(_ context.Context, sid string) (string, error) {
	if s.lookupErr != nil {
		return "", s.lookupErr
	}
	uid, ok := s.owners[sid]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return uid, nil
}

func (s *stubSessionStore) Revoke(_ context.Context, sid string) error {
	delete(s.owners, sid)
	return nil
}

func (s *stubSessionStore) RevokeAll(_ context.Context, uid string) error {
	for sid, owner := range s.owners {
		if owner == uid {
			delete(s.owners, sid)
		}
	}
	s.revoked = append(s.revoked, uid)
	return nil
}

type stubAuditRepo struct {
	entries []*domain.AuditEntry
	err     error
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditEntry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *stubAuditRepo) actions() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type stubStatsRepo struct {
	stats       *domain.AdminStats
	recentSince time.Time
	dailySince  time.Time
}

func (r *stubStatsRepo) Collect(_ context.Context, recentSince, dailySince time.Time) (*domain.AdminStats, error) {
	r.recentSince, r.dailySince = recentSince, dailySince
	clone := *r.stats
	return &clone, nil
}

type stubTodoRepo struct {
	todos      map[string]*domain.Todo
	lastFilter ports.ListTodosFilter
}

func newStubTodoRepo(todos ...*domain.Todo) *stubTodoRepo {
	r := &stubTodoRepo{todos: make(map[string]*domain.Todo)}
	for _, t := range todos {
		clone := *t
		r.todos[t.ID] = &clone
	}
	return r
}

func (r *stubTodoRepo) Create(_ context.Context, t *domain.Todo) error {
	clone := *t
	r.todos[t.ID] = &clone
	return nil
}

func (r *stubTodoRepo) FindByID(_ context.Context, id string) (*domain.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	clone := *t
	return &clone, nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubTodoRepo) List(_ context.Context, f ports.ListTodosFilter) ([]*domain.Todo, int64, error) {
	r.lastFilter = f
	var matched []*domain.Todo
	for _, t := range r.todos {
		if t.UserID != f.UserID {
			continue
		}
		if f.Filter == domain.TodoFilterCompleted && !t.Completed {
			continue
		}
		if f.Filter == domain.TodoFilterPending && t.Completed {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			hay := strings.ToLower(t.Title + " " + t.Description + " " + t.Tags)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		clone := *t
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubTodoRepo) Replace(_ context.Context, t *domain.Todo) error {
	if _, ok := r.todos[t.ID]; !ok {
		return domain.ErrTodoNotFound
	}
	clone := *t
	r.todos[t.ID] = &clone
	return nil
}

func (r *stubTodoRepo) Delete(_ context.Context, id string) error {
	delete(r.todos, id)
	return nil
}

func (r *stubTodoRepo) DeleteByUser(_ context.Context, userID string) error {
	for id, t := range r.todos {
		if t.UserID == userID {
			delete(r.todos, id)
		}
	}
	return nil
}

func (r *stubTodoRepo) Summary(_ context.Context, userID string) (*domain.DashboardSummary, error) {
	var s domain.DashboardSummary
	for _, t := range r.todos {
		if t.UserID != userID {
			continue
		}
		s.Total++
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		if t.Priority == domain.PriorityHigh {
			s.HighPriorityPending++
		}
	}
	return &s, nil
}

type stubFileStore struct {
	saved map[string][]byte
}

func (s *stubFileStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[name] = data
	return "/uploads/" + name, nil
}

func seedUser(id string, role domain.Role) *domain.User {
	return &domain.User{
		ID:        id,
		Name:      strings.ToUpper(id[:1]) + id[1:],
		Email:     id + "@example.com",
		Role:      role,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func ptr[T any](v T) *T { return &v }
