package tcndata

import (
	"context"
	"testing"
	"time"

	"git.teamcore.network/tcn/tcn/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	userRowValues := func(id int, username, email string, roleID int) []any {
		return []any{int64(id), username, email, "hash", int64(roleID), time.Now(), nil}
	}

	t.Run("first user becomes moderator", func(t *testing.T) {
		conn := &fakeConn{t: t, results: [][][]any{
			{{int64(0)}}, // user count
			{{int64(7), models.RoleModerator, ""}},
			{userRowValues(1, "admin", "admin@example.com", 7)},
		}}

		user, err := RegisterUser(context.Background(), conn, "admin", "admin@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, models.RoleModerator, user.Role.Name)
	})

	t.Run("later users become members", func(t *testing.T) {
		conn := &fakeConn{t: t, results: [][][]any{
			{{int64(3)}},
			{{int64(4), models.RoleMember, ""}},
			{userRowValues(8, "bob", "bob@example.com", 4)},
		}}

		user, err := RegisterUser(context.Background(), conn, "bob", "bob@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, models.RoleMember, user.Role.Name)
	})

	// Two registrations racing on an empty table must not both read zero and
	// both claim the bootstrap role; the advisory lock has to be in place
	// before the count happens.
	t.Run("locks registrations before counting", func(t *testing.T) {
		conn := &fakeConn{t: t, results: [][][]any{
			{{int64(0)}},
			{{int64(7), models.RoleModerator, ""}},
			{userRowValues(1, "admin", "admin@example.com", 7)},
		}}

		_, err := RegisterUser(context.Background(), conn, "admin", "admin@example.com", "password123")
		require.NoError(t, err)

		lockIdx := conn.indexOf("pg_advisory_xact_lock")
		countIdx := conn.indexOf("COUNT(*) FROM tcn_user")
		require.NotEqual(t, -1, lockIdx, "registration must take the advisory lock")
		require.NotEqual(t, -1, countIdx)
		assert.Less(t, lockIdx, countIdx, "the lock must be held before the first-user check")
	})
}
