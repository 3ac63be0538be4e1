package tcndata

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeConn scripts query results in order and records every statement issued
// through it, so the statement sequencing of transactional helpers can be
// exercised without a live server. Exec always reports one affected row.
type fakeConn struct {
	t       *testing.T
	log     []string
	results [][][]any // one entry per expected Query, consumed in order
}

func (c *fakeConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.log = append(c.log, sql)
	if len(c.results) == 0 {
		c.t.Fatalf("unexpected query: %s", sql)
	}
	rows := c.results[0]
	c.results = c.results[1:]
	return &fakeRows{rows: rows, idx: -1}, nil
}

func (c *fakeConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not implemented")
}

func (c *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.log = append(c.log, sql)
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (c *fakeConn) Begin(ctx context.Context) (pgx.Tx, error) {
	return &fakeTx{c}, nil
}

type fakeTx struct {
	*fakeConn
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	tx.log = append(tx.log, "COMMIT")
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	return nil
}

func (tx *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}

func (tx *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}

func (tx *fakeTx) LargeObjects() pgx.LargeObjects {
	panic("not implemented")
}

func (tx *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}

func (tx *fakeTx) Conn() *pgx.Conn {
	return nil
}

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Close()                        {}
func (r *fakeRows) Err() error                    { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	return nil
}
func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}
func (r *fakeRows) Scan(dest ...any) error { panic("not implemented") }
func (r *fakeRows) Values() ([]any, error) { return r.rows[r.idx], nil }
func (r *fakeRows) RawValues() [][]byte    { panic("not implemented") }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

// Index of the first logged statement containing the given fragment, or -1.
func (c *fakeConn) indexOf(fragment string) int {
	for i, sql := range c.log {
		if strings.Contains(sql, fragment) {
			return i
		}
	}
	return -1
}
