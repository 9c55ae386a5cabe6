package domain

// Identity is the {id, role} pair resolved from a verified token.
// It is derived from the token alone; nothing is re-read from the store.
type Identity struct {
	ID   int64
	Role Role
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IsSelf reports whether id designates the identity's own account.
func (i Identity) IsSelf(id int64) bool {
	return i.ID == id
}

// CanAccessUser is the self-or-admin predicate for user resources.
func (i Identity) CanAccessUser(userID int64) bool {
	return i.IsSelf(userID) || i.IsAdmin()
}

// CanModify is the owner-or-admin predicate for authored content
// (comments and articles).
func (i Identity) CanModify(authorID int64) bool {
	return i.ID == authorID || i.IsAdmin()
}
