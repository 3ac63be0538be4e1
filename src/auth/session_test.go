package auth

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Records queries and returns canned rows; enough of a connection for the
// session lookups.
type fakeSessionConn struct {
	queries []string
	rows    [][]any
}

func (c *fakeSessionConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.queries = append(c.queries, sql)
	return &fakeSessionRows{rows: c.rows, idx: -1}, nil
}

func (c *fakeSessionConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not implemented")
}

func (c *fakeSessionConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.queries = append(c.queries, sql)
	return pgconn.NewCommandTag("DELETE 1"), nil
}

func (c *fakeSessionConn) Begin(ctx context.Context) (pgx.Tx, error) {
	panic("not implemented")
}

type fakeSessionRows struct {
	rows [][]any
	idx  int
}

func (r *fakeSessionRows) Close()                        {}
func (r *fakeSessionRows) Err() error                    { return nil }
func (r *fakeSessionRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeSessionRows) FieldDescriptions() []pgconn.FieldDescription {
	return nil
}
func (r *fakeSessionRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}
func (r *fakeSessionRows) Scan(dest ...any) error { panic("not implemented") }
func (r *fakeSessionRows) Values() ([]any, error) { return r.rows[r.idx], nil }
func (r *fakeSessionRows) RawValues() [][]byte    { panic("not implemented") }
func (r *fakeSessionRows) Conn() *pgx.Conn        { return nil }

// A session row past its expiry must stop working immediately, not linger
// until the sweeper gets to it. The lookup itself filters on expiry.
func TestGetSessionFiltersExpired(t *testing.T) {
	conn := &fakeSessionConn{} // no rows: the expiry predicate excluded it

	_, err := GetSession(context.Background(), conn, "some-session-id")
	assert.ErrorIs(t, err, ErrNoSession)

	require.Len(t, conn.queries, 1)
	assert.Contains(t, conn.queries[0], "expires_at > CURRENT_TIMESTAMP")
}

func TestGetSessionReturnsLiveSession(t *testing.T) {
	expires := time.Now().Add(time.Hour)
	conn := &fakeSessionConn{rows: [][]any{{"some-session-id", int64(42), expires}}}

	sess, err := GetSession(context.Background(), conn, "some-session-id")
	require.NoError(t, err)
	assert.Equal(t, 42, sess.UserID)
	assert.Equal(t, "some-session-id", sess.ID)
}
