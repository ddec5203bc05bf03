package domain

// Admin mutation rules. They are evaluated after the route guard has already
// established the minimum rank, so each function receives a resolved actor.

// EnsureNotSelf rejects an action whose actor and target are the same account.
func EnsureNotSelf(actorID, targetID, reason string) error {
	if actorID == targetID {
		return &SelfActionError{Reason: reason}
	}
	return nil
}

// RoleChanged reports whether the update requests a role different from the
// one the target already holds.
func (u UserUpdate) RoleChanged(current Role) bool {
	return u.Role != nil && *u.Role != current
}

// AuthorizeUserUpdate applies the admin edit rules to a pending update of
// target by actor. A nil result means the update may be written.
func AuthorizeUserUpdate(actor *Identity, target *User, upd UserUpdate) error {
	if actor == nil || !IsAdmin(actor.Role) {
		return &ForbiddenError{Reason: "Unauthorized - Admin access required"}
	}

	if IsSuperuser(target.Role) && !IsSuperuser(actor.Role) {
		return &ForbiddenError{Reason: "Unauthorized - Cannot modify superuser accounts"}
	}

	if !upd.RoleChanged(target.Role) {
		return nil
	}

	if !upd.Role.Valid() {
		return NewValidationError("role", "role must be one of: USER ADMIN SUPERUSER")
	}
	if !IsSuperuser(actor.Role) {
		if *upd.Role == RoleSuperuser {
			return &ForbiddenError{Reason: "Unauthorized - Only superusers can create superuser accounts"}
		}
		return &ForbiddenError{Reason: "Unauthorized - Only superusers can change user roles"}
	}
	return EnsureNotSelf(actor.ID, target.ID, "Cannot change your own role")
}

// AuthorizeUserDelete applies the admin delete rules.
func AuthorizeUserDelete(actor *Identity, targetID string) error {
	if actor == nil || !IsSuperuser(actor.Role) {
		return &ForbiddenError{Reason: "Unauthorized - Superuser access required"}
	}
	return EnsureNotSelf(actor.ID, targetID, "Cannot delete your own account")
}

// AuthorizeUserCreate allows only superusers to provision accounts.
func AuthorizeUserCreate(actor *Identity) error {
	if actor == nil || !IsSuperuser(actor.Role) {
		return &ForbiddenError{Reason: "Unauthorized - Superuser access required"}
	}
	return nil
}
