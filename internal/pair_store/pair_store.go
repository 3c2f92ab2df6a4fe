package pair_store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// PairStore reads the per-language-pair lookup tables. Every table has a
// source and a target text column. It never writes.
//
// Each method checks out its own connection and returns it before
// returning, so no connection outlives a single call.
type PairStore struct {
	db *bun.DB
	builder sq.StatementBuilderType
}

func NewPairStore(db *bun.DB) *PairStore {
	// bun interpolates the arguments itself, so squirrel keeps '?' placeholders.
	return &PairStore{db: db, builder: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
}

// TableExists reports whether a table with the given name exists.
func (s *PairStore) TableExists(ctx context.Context, table string) (bool, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	q, nameColumn, err := s.tablesQuery()
	if err != nil {
		return false, err
	}
	sqlStr, args, err := q.Where(sq.Eq{nameColumn: table}).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("build table lookup: %w", err)
	}

	var name string
	if err := conn.QueryRowContext(ctx, sqlStr, args...).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return true, nil
}

// LookupExact returns the target text of the row whose source equals text,
// ignoring case. The boolean is false when no row matches.
func (s *PairStore) LookupExact(ctx context.Context, table, text string) (string, bool, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return "", false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	var target sql.NullString
	err = conn.NewSelect().
		ColumnExpr("target").
		TableExpr("?", bun.Ident(table)).
		Where("lower(source) = lower(?)", text).
		Where("target IS NOT NULL").
		Limit(1).
		Scan(ctx, &target)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("lookup in %s: %w", table, err)
	}
	return target.String, target.Valid, nil
}

// ListTables returns the names of all user tables.
func (s *PairStore) ListTables(ctx context.Context) ([]string, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	q, nameColumn, err := s.tablesQuery()
	if err != nil {
		return nil, err
	}
	sqlStr, args, err := q.OrderBy(nameColumn).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build table listing: %w", err)
	}

	rows, err := conn.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// tablesQuery selects user table names from the catalog of the current dialect.
func (s *PairStore) tablesQuery() (sq.SelectBuilder, string, error) {
	switch s.db.Dialect().Name() {
	case dialect.PG:
		return s.builder.Select("table_name").
			From("information_schema.tables").
			Where("table_schema = current_schema()").
			Where(sq.Eq{"table_type": "BASE TABLE"}), "table_name", nil
	case dialect.SQLite:
		return s.builder.Select("name").
			From("sqlite_master").
			Where(sq.Eq{"type": "table"}).
			Where(sq.NotLike{"name": "sqlite_%"}), "name", nil
	default:
		return sq.SelectBuilder{}, "", fmt.Errorf("unsupported dialect: %s", s.db.Dialect().Name())
	}
}
