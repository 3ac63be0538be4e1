package tcndata

import (
	"context"
	"strings"

	"git.teamcore.network/tcn/tcn/src/db"
	"git.teamcore.network/tcn/tcn/src/models"
	"git.teamcore.network/tcn/tcn/src/oops"
)

// Fetches all roles, ordered by name.
func FetchRoles(ctx context.Context, dbConn db.ConnOrTx) ([]*models.Role, error) {
	roles, err := db.Query[models.Role](ctx, dbConn,
		`
		SELECT $columns
		FROM role
		ORDER BY LOWER(name)
		`,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch roles")
	}
	return roles, nil
}

// Fetches a single role by name, case-insensitively. Returns db.NotFound if
// no role by that name exists.
func FetchRoleByName(ctx context.Context, dbConn db.ConnOrTx, name string) (*models.Role, error) {
	role, err := db.QueryOne[models.Role](ctx, dbConn,
		`
		SELECT $columns
		FROM role
		WHERE LOWER(name) = LOWER($1)
		`,
		name,
	)
	if err != nil {
		if err == db.NotFound {
			return nil, err
		}
		return nil, oops.New(err, "failed to fetch role by name")
	}
	return role, nil
}

func CreateRole(ctx context.Context, dbConn db.ConnOrTx, name, description string) (*models.Role, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ValidationError{Field: "name", Reason: "must not be empty"}
	}

	role, err := db.QueryOne[models.Role](ctx, dbConn,
		`
		INSERT INTO role (name, description)
		VALUES ($1, $2)
		RETURNING $columns
		`,
		name, description,
	)
	if err != nil {
		if err = translateUniqueViolation(err); err != nil {
			if _, ok := err.(DuplicateError); ok {
				return nil, err
			}
		}
		return nil, oops.New(err, "failed to create role")
	}
	return role, nil
}

func UpdateRole(ctx context.Context, dbConn db.ConnOrTx, roleID int, name, description string) (*models.Role, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ValidationError{Field: "name", Reason: "must not be empty"}
	}

	role, err := db.QueryOne[models.Role](ctx, dbConn,
		`
		UPDATE role
		SET name = $2, description = $3
		WHERE id = $1
		RETURNING $columns
		`,
		roleID, name, description,
	)
	if err != nil {
		if err == db.NotFound {
			return nil, err
		}
		if err = translateUniqueViolation(err); err != nil {
			if _, ok := err.(DuplicateError); ok {
				return nil, err
			}
		}
		return nil, oops.New(err, "failed to update role")
	}
	return role, nil
}

/*
Ensures the three baseline roles exist. Safe to run repeatedly; existing roles
keep whatever descriptions an admin may have edited into them.
*/
func SeedRoles(ctx context.Context, dbConn db.ConnOrTx) error {
	baseline := []struct {
		Name, Description string
	}{
		{models.RoleMember, "A regular community member."},
		{models.RoleModerator, "Can manage wiki pages, forum content, and users."},
		{models.RoleAdmin, "Full control, including roles and categories."},
	}

	for _, r := range baseline {
		_, err := dbConn.Exec(ctx,
			`
			INSERT INTO role (name, description)
			VALUES ($1, $2)
			ON CONFLICT ((LOWER(name))) DO NOTHING
			`,
			r.Name, r.Description,
		)
		if err != nil {
			return oops.New(err, "failed to seed role %s", r.Name)
		}
	}

	return nil
}
