package models

// The three baseline roles. Roles are reference data seeded at install time;
// names are compared case-insensitively everywhere.
const (
	RoleMember    = "Member"
	RoleModerator = "Moderator"
	RoleAdmin     = "Admin"
)

type Role struct {
	ID          int    `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}
