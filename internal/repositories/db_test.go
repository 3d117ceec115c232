package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// fakeDB scripts Exec outcomes in call order and records every statement, so
// tests can assert the exact SQL and argument sequence a repository issues.
type fakeDB struct {
	execSQL  []string
	execArgs [][]interface{}
	execErrs []error
	execTags []pgconn.CommandTag

	rowSQL  []string
	rowArgs [][]interface{}
	row     pgx.Row

	tx       *fakeTx
	beginErr error
}

func (d *fakeDB) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	i := len(d.execSQL)
	d.execSQL = append(d.execSQL, sql)
	d.execArgs = append(d.execArgs, arguments)

	var err error
	if i < len(d.execErrs) {
		err = d.execErrs[i]
	}
	var tag pgconn.CommandTag
	if i < len(d.execTags) {
		tag = d.execTags[i]
	}
	return tag, err
}

func (d *fakeDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("unexpected Query")
}

func (d *fakeDB) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	d.rowSQL = append(d.rowSQL, sql)
	d.rowArgs = append(d.rowArgs, args)
	return d.row
}

func (d *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}

// fakeRow returns a fixed Scan error; pgx.ErrNoRows simulates an empty
// result set.
type fakeRow struct {
	err error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	return r.err
}

// fakeTx records the statements run inside a transaction. The embedded nil
// pgx.Tx covers the methods the repositories never touch.
type fakeTx struct {
	pgx.Tx

	execSQL  []string
	execArgs [][]interface{}
	execErrs map[int]error

	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	i := len(t.execSQL)
	t.execSQL = append(t.execSQL, sql)
	t.execArgs = append(t.execArgs, arguments)
	if err, ok := t.execErrs[i]; ok {
		return nil, err
	}
	return nil, nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}
