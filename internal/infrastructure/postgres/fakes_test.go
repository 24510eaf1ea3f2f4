package postgres

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRows implementa pgx.Rows sobre linhas em memória.
type fakeRows struct {
	cols []string
	data [][]any
	pos  int
	err  error
}

func newFakeRows(cols []string, data ...[]any) *fakeRows {
	return &fakeRows{cols: cols, data: data, pos: -1}
}

func (r *fakeRows) Close() {}
func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) RawValues() [][]byte { return nil }
func (r *fakeRows) Conn() *pgx.Conn { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.cols))
	for i, c := range r.cols {
		fds[i] = pgconn.FieldDescription{Name: c}
	}
	return fds
}

func (r *fakeRows) Next() bool {
	if r.err != nil {
		return false
	}
	r.pos++
	return r.pos < len(r.data)
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	if len(dest) == 1 {
		if rs, ok := dest[0].(pgx.RowScanner); ok {
			return rs.ScanRow(r)
		}
	}
	row := r.data[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinos para %d colunas", len(dest), len(row))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if row[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(row[i]))
	}
	return nil
}

// fakeConn implementa Querier e registra as chamadas.
type fakeConn struct {
	mu      sync.Mutex
	rows    *fakeRows
	tag     pgconn.CommandTag
	err     error
	queries []string
	args    [][]any
}

func (c *fakeConn) record(sql string, args []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries = append(c.queries, sql)
	c.args = append(c.args, args)
}

func (c *fakeConn) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queries)
}

func (c *fakeConn) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.record(sql, args)
	if c.err != nil {
		return pgconn.CommandTag{}, c.err
	}
	return c.tag, nil
}

func (c *fakeConn) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.record(sql, args)
	if c.err != nil {
		return nil, c.err
	}
	if c.rows == nil {
		return newFakeRows(nil), nil
	}
	return c.rows, nil
}

// fakeTx é uma transação em memória; só os métodos usados aqui são implementados.
type fakeTx struct {
	pgx.Tx
	fakeConn
	commitErr  error
	committed  int
	rolledBack int
	closed     bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.fakeConn.Exec(ctx, sql, args...)
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.fakeConn.Query(ctx, sql, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	t.rolledBack++
	return nil
}

// fakePool implementa Pool; Begin devolve sempre o mesmo fakeTx.
type fakePool struct {
	fakeConn
	tx       *fakeTx
	beginErr error
}

func (p *fakePool) Begin(context.Context) (pgx.Tx, error) {
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	return p.tx, nil
}

// fakeObserver guarda as operações observadas.
type fakeObserver struct {
	ops    []string
	failed int
}

func (o *fakeObserver) ObserveStatement(op string, _ time.Duration, err error) {
	o.ops = append(o.ops, op)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		o.failed++
	}
}
