package tcndata

import (
	"context"
	"strings"
	"time"

	"git.teamcore.network/tcn/tcn/src/auth"
	"git.teamcore.network/tcn/tcn/src/db"
	"git.teamcore.network/tcn/tcn/src/models"
	"git.teamcore.network/tcn/tcn/src/oops"
)

// Application-level advisory lock key for user registration.
const registrationLockKey = 4001

type UsersQuery struct {
	UserIDs   []int    // if empty, all users
	Usernames []string // if empty, all users; matched case-insensitively
}

type userRow struct {
	User models.User `db:"tcn_user"`
	Role models.Role `db:"role"`
}

/*
Fetches users along with their roles, ordered by join date. Provide as much
information as you have on hand.
*/
func FetchUsers(ctx context.Context, dbConn db.ConnOrTx, q UsersQuery) ([]*models.User, error) {
	for i := range q.Usernames {
		q.Usernames[i] = strings.ToLower(q.Usernames[i])
	}

	var qb db.QueryBuilder
	qb.Add(`
		SELECT $columns
		FROM
			tcn_user
			JOIN role ON role.id = tcn_user.role_id
		WHERE
			TRUE
	`)
	if len(q.UserIDs) > 0 {
		qb.Add(`AND tcn_user.id = ANY($?)`, q.UserIDs)
	}
	if len(q.Usernames) > 0 {
		qb.Add(`AND LOWER(tcn_user.username) = ANY($?)`, q.Usernames)
	}
	qb.Add(`ORDER BY tcn_user.date_joined, tcn_user.id`)

	userRows, err := db.Query[userRow](ctx, dbConn, qb.String(), qb.Args()...)
	if err != nil {
		return nil, oops.New(err, "failed to fetch users")
	}

	result := make([]*models.User, len(userRows))
	for i, row := range userRows {
		user := row.User
		role := row.Role
		user.Role = &role
		result[i] = &user
	}

	return result, nil
}

/*
Fetches a single user and their role. A wrapper around FetchUsers.

Returns db.NotFound if no result is found.
*/
func FetchUser(ctx context.Context, dbConn db.ConnOrTx, userID int) (*models.User, error) {
	res, err := FetchUsers(ctx, dbConn, UsersQuery{UserIDs: []int{userID}})
	if err != nil {
		return nil, oops.New(err, "failed to fetch user")
	}
	if len(res) == 0 {
		return nil, db.NotFound
	}
	return res[0], nil
}

// Fetches a single user by username, case-insensitively. A wrapper around
// FetchUsers; returns db.NotFound if no such user exists.
func FetchUserByUsername(ctx context.Context, dbConn db.ConnOrTx, username string) (*models.User, error) {
	res, err := FetchUsers(ctx, dbConn, UsersQuery{Usernames: []string{username}})
	if err != nil {
		return nil, oops.New(err, "failed to fetch user by username")
	}
	if len(res) == 0 {
		return nil, db.NotFound
	}
	return res[0], nil
}

/*
Registers a new account. The very first account on a fresh site gets the
Moderator role so that somebody can administer the place; everyone after that
starts out as a Member. The user count check and the insert share a transaction
so two simultaneous first registrations cannot both end up moderators.
*/
func RegisterUser(ctx context.Context, dbConn db.ConnOrTx, username, email, password string) (*models.User, error) {
	hashed := auth.HashPassword(password)

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	// The count below takes no lock, so two registrations racing on an empty
	// table could both read zero and both become the bootstrap moderator.
	// The advisory lock serializes registrations until commit.
	_, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, registrationLockKey)
	if err != nil {
		return nil, oops.New(err, "failed to lock registrations")
	}

	numUsers, err := db.QueryOneScalar[int](ctx, tx, `SELECT COUNT(*) FROM tcn_user`)
	if err != nil {
		return nil, oops.New(err, "failed to count users")
	}

	roleName := models.RoleMember
	if numUsers == 0 {
		roleName = models.RoleModerator
	}
	role, err := FetchRoleByName(ctx, tx, roleName)
	if err != nil {
		if err == db.NotFound {
			return nil, ErrRoleMissing
		}
		return nil, err
	}

	user, err := createUser(ctx, tx, username, email, hashed.String(), role.ID)
	if err != nil {
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to commit new user")
	}

	user.Role = role
	return user, nil
}

// Creates an account with an explicit role, for admin user management and for
// seeding sample data. The password must already be hashed.
func CreateUser(ctx context.Context, dbConn db.ConnOrTx, username, email, hashedPassword string, roleID int) (*models.User, error) {
	return createUser(ctx, dbConn, username, email, hashedPassword, roleID)
}

func createUser(ctx context.Context, dbConn db.ConnOrTx, username, email, hashedPassword string, roleID int) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if strings.TrimSpace(email) == "" {
		return nil, ValidationError{Field: "email", Reason: "must not be empty"}
	}

	user, err := db.QueryOne[models.User](ctx, dbConn,
		`
		INSERT INTO tcn_user (username, email, password, role_id, date_joined)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING $columns
		`,
		username, email, hashedPassword, roleID, time.Now(),
	)
	if err != nil {
		if err = translateUniqueViolation(err); err != nil {
			if _, ok := err.(DuplicateError); ok {
				return nil, err
			}
		}
		return nil, oops.New(err, "failed to create user")
	}
	return user, nil
}

// Moves a user to a different role. The change applies to the user's very
// next request, since the actor's role is loaded fresh every time.
func ChangeUserRole(ctx context.Context, dbConn db.ConnOrTx, userID, roleID int) error {
	tag, err := dbConn.Exec(ctx,
		`
		UPDATE tcn_user
		SET role_id = $2
		WHERE id = $1
		`,
		userID, roleID,
	)
	if err != nil {
		return oops.New(err, "failed to change user role")
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound
	}
	return nil
}

func CountUsers(ctx context.Context, dbConn db.ConnOrTx) (int, error) {
	count, err := db.QueryOneScalar[int](ctx, dbConn, `SELECT COUNT(*) FROM tcn_user`)
	if err != nil {
		return 0, oops.New(err, "failed to count users")
	}
	return count, nil
}
