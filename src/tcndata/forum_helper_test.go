package tcndata

import (
	"context"
	"testing"
	"time"

	"git.teamcore.network/tcn/tcn/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePost(id int, createdAt time.Time) *models.Post {
	return &models.Post{ID: id, ThreadID: 1, CreatedAt: createdAt}
}

func TestOpeningAndLatestPost(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, OpeningPost(nil))
		assert.Nil(t, LatestPost(nil))
	})

	t.Run("single post is both", func(t *testing.T) {
		posts := []*models.Post{makePost(5, base)}
		assert.Equal(t, 5, OpeningPost(posts).ID)
		assert.Equal(t, 5, LatestPost(posts).ID)
	})

	t.Run("ordered by timestamp, not by id", func(t *testing.T) {
		posts := []*models.Post{
			makePost(10, base.Add(2*time.Hour)),
			makePost(11, base), // backdated
			makePost(12, base.Add(1*time.Hour)),
		}
		assert.Equal(t, 11, OpeningPost(posts).ID)
		assert.Equal(t, 10, LatestPost(posts).ID)
	})

	t.Run("timestamp ties break by id", func(t *testing.T) {
		posts := []*models.Post{
			makePost(3, base),
			makePost(1, base),
			makePost(2, base),
		}
		assert.Equal(t, 1, OpeningPost(posts).ID)
		assert.Equal(t, 3, LatestPost(posts).ID)
	})

	t.Run("input order does not matter", func(t *testing.T) {
		a := makePost(1, base)
		b := makePost(2, base.Add(time.Minute))
		c := makePost(3, base.Add(2*time.Minute))
		for _, posts := range [][]*models.Post{
			{a, b, c}, {c, b, a}, {b, a, c},
		} {
			assert.Equal(t, a.ID, OpeningPost(posts).ID)
			assert.Equal(t, c.ID, LatestPost(posts).ID)
		}
	})
}

func TestErrors(t *testing.T) {
	t.Run("duplicate error names its field", func(t *testing.T) {
		err := DuplicateError{Field: "username"}
		assert.Contains(t, err.Error(), "username")
	})

	t.Run("validation error names field and reason", func(t *testing.T) {
		err := ValidationError{Field: "title", Reason: "must not be empty"}
		assert.Contains(t, err.Error(), "title")
		assert.Contains(t, err.Error(), "must not be empty")
	})

	t.Run("every unique index maps to a field", func(t *testing.T) {
		for constraint, field := range uniqueConstraintFields {
			assert.NotEmpty(t, field, "constraint %s", constraint)
		}
	})

	t.Run("unknown errors pass through unchanged", func(t *testing.T) {
		err := assert.AnError
		assert.Equal(t, err, translateUniqueViolation(err))
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("refuses when threads remain", func(t *testing.T) {
		conn := &fakeConn{t: t, results: [][][]any{
			{{int64(5)}}, // row lock
			{{int64(2)}}, // thread count
		}}

		err := DeleteCategory(context.Background(), conn, 5)
		assert.ErrorIs(t, err, ErrCategoryNotEmpty)
	})

	// A thread insert holds a share lock on the category row through its
	// foreign key, so taking FOR UPDATE before counting is what makes the
	// count authoritative. The delete must never run off an unlocked count.
	t.Run("locks the category row before counting", func(t *testing.T) {
		conn := &fakeConn{t: t, results: [][][]any{
			{{int64(5)}},
			{{int64(0)}},
		}}

		err := DeleteCategory(context.Background(), conn, 5)
		assert.NoError(t, err)

		lockIdx := conn.indexOf("FOR UPDATE")
		countIdx := conn.indexOf("COUNT(*) FROM thread")
		deleteIdx := conn.indexOf("DELETE FROM category")
		require.NotEqual(t, -1, lockIdx, "the category row must be locked")
		require.NotEqual(t, -1, countIdx)
		require.NotEqual(t, -1, deleteIdx)
		assert.Less(t, lockIdx, countIdx, "the lock must be held before the count")
		assert.Less(t, countIdx, deleteIdx)
	})
}
