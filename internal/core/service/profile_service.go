package service

import (
	"context"
	"strings"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// ProfileService lets a user read and edit their own account.
type ProfileService struct {
	users ports.UserRepository
}

func NewProfileService(users ports.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Update changes name and image only. Role and email are not editable here.
func (s *ProfileService) Update(ctx context.Context, userID string, name, image *string) (*domain.User, error) {
	upd := domain.UserUpdate{Image: image}
	if name != nil {
		n := strings.TrimSpace(*name)
		if len([]rune(n)) < 2 {
			return nil, domain.NewValidationError("name", "Name must be at least 2 characters")
		}
		upd.Name = &n
	}
	if upd.Empty() {
		return s.users.FindByID(ctx, userID)
	}
	return s.users.Update(ctx, userID, upd)
}
