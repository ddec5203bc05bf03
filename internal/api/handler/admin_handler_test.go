package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/api/middleware"
	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

type stubAdminService struct {
	createFn func(ctx context.Context, actor *domain.Identity, in ports.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, actor *domain.Identity, id string, upd domain.UserUpdate) (*domain.User, error)
	deleteFn func(ctx context.Context, actor *domain.Identity, id string) (*ports.DeletedUser, error)
	getFn    func(ctx context.Context, id string) (*domain.UserWithCount, error)
}

func (s *stubAdminService) ListUsers(context.Context) ([]domain.UserWithCount, error) {
	return []domain.UserWithCount{}, nil
}

func (s *stubAdminService) GetUser(ctx context.Context, id string) (*domain.UserWithCount, error) {
	return s.getFn(ctx, id)
}

func (s *stubAdminService) CreateUser(ctx context.Context, actor *domain.Identity, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubAdminService) UpdateUser(ctx context.Context, actor *domain.Identity, id string, upd domain.UserUpdate) (*domain.User, error) {
	return s.updateFn(ctx, actor, id, upd)
}

func (s *stubAdminService) DeleteUser(ctx context.Context, actor *domain.Identity, id string) (*ports.DeletedUser, error) {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubAdminService) Stats(context.Context) (*domain.AdminStats, error) {
	return &domain.AdminStats{}, nil
}

var superuser = &domain.Identity{ID: "root", Role: domain.RoleSuperuser}

func TestAdminHandler_UpdateUser_PassesOnlyPresentFields(t *testing.T) {
	stub := &stubAdminService{
		updateFn: func(ctx context.Context, actor *domain.Identity, id string, upd domain.UserUpdate) (*domain.User, error) {
			assert.Equal(t, superuser, actor)
			assert.Equal(t, "u2", id)
			assert.Nil(t, upd.Name)
			assert.Nil(t, upd.Email)
			require.NotNil(t, upd.Role)
			assert.Equal(t, domain.RoleAdmin, *upd.Role)
			return &domain.User{ID: id, Role: *upd.Role}, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, rec := newJSONContext(http.MethodPatch, "/api/admin/users/u2", `{"role":"ADMIN"}`)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	middleware.SetIdentity(c, superuser)

	require.NoError(t, handler.UpdateUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminHandler_UpdateUser_RejectsUnknownRole(t *testing.T) {
	handler := NewAdminHandler(&stubAdminService{})

	c, _ := newJSONContext(http.MethodPatch, "/api/admin/users/u2", `{"role":"OWNER"}`)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	middleware.SetIdentity(c, superuser)

	var ve *domain.ValidationError
	require.ErrorAs(t, handler.UpdateUser(c), &ve)
	assert.Equal(t, "role", ve.Fields[0].Field)
}

func TestAdminHandler_UpdateUser_PropagatesPolicyError(t *testing.T) {
	stub := &stubAdminService{
		updateFn: func(context.Context, *domain.Identity, string, domain.UserUpdate) (*domain.User, error) {
			return nil, &domain.ForbiddenError{Reason: "Unauthorized - Only superusers can change user roles"}
		},
	}
	handler := NewAdminHandler(stub)

	c, _ := newJSONContext(http.MethodPatch, "/api/admin/users/u2", `{"role":"SUPERUSER"}`)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	middleware.SetIdentity(c, &domain.Identity{ID: "a", Role: domain.RoleAdmin})

	err := handler.UpdateUser(c)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestAdminHandler_CreateUser_DefaultsRole(t *testing.T) {
	stub := &stubAdminService{
		createFn: func(ctx context.Context, actor *domain.Identity, in ports.CreateUserInput) (*domain.User, error) {
			assert.Equal(t, domain.Role(""), in.Role)
			return &domain.User{ID: "n1", Name: in.Name, Email: in.Email, Role: domain.RoleUser}, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/admin/users", `{"name":"New","email":"new@example.com","password":"secret1"}`)
	middleware.SetIdentity(c, superuser)

	require.NoError(t, handler.CreateUser(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAdminHandler_DeleteUser_Response(t *testing.T) {
	stub := &stubAdminService{
		deleteFn: func(ctx context.Context, actor *domain.Identity, id string) (*ports.DeletedUser, error) {
			return &ports.DeletedUser{ID: id, Email: "gone@example.com", Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, rec := newJSONContext(http.MethodDelete, "/api/admin/users/u2", "")
	c.SetParamNames("id")
	c.SetParamValues("u2")
	middleware.SetIdentity(c, superuser)

	require.NoError(t, handler.DeleteUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message     string `json:"message"`
		DeletedUser struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"deletedUser"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "User deleted successfully", resp.Message)
	assert.Equal(t, "u2", resp.DeletedUser.ID)
	assert.Equal(t, "ADMIN", resp.DeletedUser.Role)
}

func TestAdminHandler_RequiresIdentity(t *testing.T) {
	handler := NewAdminHandler(&stubAdminService{})

	c, _ := newJSONContext(http.MethodDelete, "/api/admin/users/u2", "")
	assert.ErrorIs(t, handler.DeleteUser(c), domain.ErrUnauthenticated)
}

func TestAdminHandler_GetUser_NotFound(t *testing.T) {
	stub := &stubAdminService{
		getFn: func(context.Context, string) (*domain.UserWithCount, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewAdminHandler(stub)

	c, _ := newJSONContext(http.MethodGet, "/api/admin/users/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	assert.ErrorIs(t, handler.GetUser(c), domain.ErrUserNotFound)
}
