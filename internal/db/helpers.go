package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"log"
)

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NullIfEmpty helps store optional strings as NULL.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func HasTable(ctx context.Context, q Execer, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		logBadConn("HasTable", err)
		return false
	}
	return name.Valid && name.String != ""
}

func HasColumn(ctx context.Context, q Execer, table, column string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)
	if err != nil {
		logBadConn("HasColumn", err)
		return false
	}
	return name.Valid && name.String != ""
}

// EnsureTable runs ddl only when table is missing from the current schema.
func EnsureTable(ctx context.Context, q Execer, table, ddl string) error {
	if HasTable(ctx, q, table) {
		return nil
	}
	if _, err := q.ExecContext(ctx, ddl); err != nil {
		return err
	}
	log.Printf("[SCHEMA] action=create_table table=%s", table)
	return nil
}

// EnsureColumn adds a column to tables created by older releases.
func EnsureColumn(ctx context.Context, q Execer, table, column, alter string) error {
	if HasColumn(ctx, q, table, column) {
		return nil
	}
	_, err := q.ExecContext(ctx, alter)
	return err
}

func logBadConn(tag string, err error) {
	if errors.Is(err, driver.ErrBadConn) {
		log.Println(tag, "driver.ErrBadConn")
	}
}
