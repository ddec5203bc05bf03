package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasRole_Reflexive(t *testing.T) {
	for _, r := range Roles() {
		assert.True(t, HasRole(r, r), "role %s", r)
	}
}

func TestHasRole_Hierarchy(t *testing.T) {
	cases := []struct {
		actual, required Role
		want             bool
	}{
		{RoleSuperuser, RoleAdmin, true},
		{RoleSuperuser, RoleUser, true},
		{RoleAdmin, RoleUser, true},
		{RoleUser, RoleAdmin, false},
		{RoleAdmin, RoleSuperuser, false},
		{RoleUser, RoleSuperuser, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HasRole(tc.actual, tc.required), "%s >= %s", tc.actual, tc.required)
	}
}

func TestHasRole_UnknownNeverSatisfies(t *testing.T) {
	for _, unknown := range []Role{"", "admin", "ROOT", "GUEST"} {
		for _, r := range Roles() {
			assert.False(t, HasRole(unknown, r), "%q as actual vs %s", unknown, r)
			assert.False(t, HasRole(r, unknown), "%s vs %q as required", r, unknown)
		}
		assert.False(t, IsAdmin(unknown))
		assert.False(t, IsSuperuser(unknown))
		assert.Zero(t, unknown.Rank())
		assert.False(t, unknown.Valid())
	}
}

func TestIsAdminAndIsSuperuser(t *testing.T) {
	assert.False(t, IsAdmin(RoleUser))
	assert.True(t, IsAdmin(RoleAdmin))
	assert.True(t, IsAdmin(RoleSuperuser))

	assert.False(t, IsSuperuser(RoleAdmin))
	assert.True(t, IsSuperuser(RoleSuperuser))
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	_, ok = ParseRole("owner")
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Super Administrator", RoleSuperuser.DisplayName())
	assert.Equal(t, "Unknown", Role("x").DisplayName())
}
