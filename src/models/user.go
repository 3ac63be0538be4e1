package models

import (
	"strings"
	"time"
)

type User struct {
	ID int `db:"id"`

	Username string `db:"username"`
	Email    string `db:"email"`
	Password string `db:"password"`

	RoleID     int        `db:"role_id"`
	DateJoined time.Time  `db:"date_joined"`
	LastLogin  *time.Time `db:"last_login"`

	// Filled in by fetch helpers via a join; never nil on a fully-fetched user.
	Role *Role
}

func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// Moderators and admins are equivalent for moderation purposes; Admin is a
// superset of Moderator.
func (u *User) IsModerator() bool {
	name := u.RoleName()
	return strings.EqualFold(name, RoleModerator) || strings.EqualFold(name, RoleAdmin)
}

func (u *User) IsAdmin() bool {
	return strings.EqualFold(u.RoleName(), RoleAdmin)
}
