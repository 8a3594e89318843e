// Package sqldb implementa los repositorios y el workflow.Store sobre
// database/sql. Postgres y SQLite comparten este código; lo específico de
// cada motor vive en su Dialect.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/applications"
	"pet-adoption-center/internal/domain/pets"
	"pet-adoption-center/internal/domain/shelters"
	"pet-adoption-center/internal/domain/workflow"
	"pet-adoption-center/internal/ports/storage"
)

// querier lo cumplen *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

type DB struct {
	db *sql.DB
	d  Dialect
}

func New(db *sql.DB, d Dialect) *DB {
	return &DB{db: db, d: d}
}

func (s *DB) Dialect() Dialect { return s.d }

// WithinTx implementa workflow.Store.
func (s *DB) WithinTx(ctx context.Context, fn func(ctx context.Context, tx workflow.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, s.d.TxOptions)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(ctx, &sqlTx{q: conn{tx, s.d}}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", s.mapWriteErr(err))
	}
	return nil
}

func (s *DB) conn() conn {
	return conn{s.db, s.d}
}

func (s *DB) mapWriteErr(err error) error {
	return conn{s.db, s.d}.mapWriteErr(err)
}

// conn es un querier + dialecto; rebindea cada query.
type conn struct {
	q querier
	d Dialect
}

func (c conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.q.ExecContext(ctx, c.d.Rebind(query), args...)
}

func (c conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.q.QueryContext(ctx, c.d.Rebind(query), args...)
}

func (c conn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return c.q.QueryRowContext(ctx, c.d.Rebind(query), args...)
}

// execOne exige exactamente una fila afectada (0 => storage.ErrNotFound).
func (c conn) execOne(ctx context.Context, query string, args ...any) error {
	res, err := c.exec(ctx, query, args...)
	if err != nil {
		return c.mapWriteErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// insert mapea unique => ErrConflict y FK => ErrNotFound (falta la fila referenciada).
func (c conn) insert(ctx context.Context, query string, args ...any) error {
	if _, err := c.exec(ctx, query, args...); err != nil {
		if c.d.foreignKey(err) {
			return storage.ErrNotFound
		}
		return c.mapWriteErr(err)
	}
	return nil
}

// deleteOne mapea FK => ErrConflict (la fila sigue referenciada).
func (c conn) deleteOne(ctx context.Context, query string, args ...any) error {
	res, err := c.exec(ctx, query, args...)
	if err != nil {
		if c.d.foreignKey(err) {
			return storage.ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (c conn) mapWriteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case c.d.unique(err):
		return fmt.Errorf("%w: %v", storage.ErrConflict, err)
	case c.d.foreignKey(err):
		return fmt.Errorf("%w: %v", storage.ErrNotFound, err)
	}
	return err
}

func (c conn) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := c.queryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// notFound traduce sql.ErrNoRows.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

// where arma cláusulas AND con sus args.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// collectRows escanea todas las filas con scan.
func collectRows[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

var (
	_ workflow.Store           = (*DB)(nil)
	_ workflow.Tx              = (*sqlTx)(nil)
	_ shelters.Repository      = (*ShelterRepo)(nil)
	_ shelters.StaffRepository = (*StaffRepo)(nil)
	_ pets.Repository          = (*PetRepo)(nil)
	_ adopters.Repository      = (*AdopterRepo)(nil)
	_ applications.Repository  = (*ApplicationRepo)(nil)
	_ adoptions.Repository     = (*AdoptionRepo)(nil)
)
