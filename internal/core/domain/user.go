package domain

import "time"

// User models a persisted account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Image        string    `json:"image,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserWithCount is the admin listing view of a user.
type UserWithCount struct {
	User
	TodoCount int64 `json:"todoCount"`
}

// Identity is the request-scoped projection of the caller. It is rebuilt from
// the database on every request and never cached.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
	Role  Role   `json:"role"`
}

// IdentityOf projects a stored user into an Identity.
func IdentityOf(u *User) *Identity {
	return &Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Image: u.Image,
		Role:  u.Role,
	}
}

// Decision is the outcome of a role check. User is nil when the caller has no
// valid session.
type Decision struct {
	Authorized bool
	User       *Identity
}

// SessionClaims is what a verified session token carries. Role is only a hint
// for the edge filter; handlers always re-read the role from storage.
type SessionClaims struct {
	UserID    string
	SessionID string
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// UserUpdate is a partial update of a user. Nil fields are left unchanged.
type UserUpdate struct {
	Name  *string
	Email *string
	Role  *Role
	Image *string
}

// Empty reports whether the update carries no field.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Role == nil && u.Image == nil
}
