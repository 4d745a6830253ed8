// Package store provides a SQLite backed source and sink for log entries.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/peeklog/pkg/entries"
	"github.com/saylorsolutions/peeklog/pkg/iterator"
	_ "modernc.org/sqlite"
)

var (
	tablePattern = regexp.MustCompile(`^[\w\d]+$`)
	// ErrBadTable is returned when a table name doesn't match the allowed pattern.
	ErrBadTable = errors.New("invalid table name")
)

// SqliteStore is a store for log entries using SQLite as a storage engine.
// Entry fields map to text columns, added to the table as they're first seen.
type SqliteStore struct {
	db  *sql.DB
	log hclog.Logger
}

// NewStore opens (creating if needed) a SQLite entry store at the given file.
func NewStore(log hclog.Logger, filename string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, err
	}
	return &SqliteStore{
		db:  db,
		log: log.Named("sqlite-entry-store"),
	}, nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

// QueryEntries returns an iterator over all entries previously sunk into the given table,
// in insertion order.
func (s *SqliteStore) QueryEntries(table string) (iterator.Iterator[entries.LogEntry], error) {
	if !tablePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %s", ErrBadTable, table)
	}
	rows, err := s.db.Query("select * from " + table + " order by evt_id")
	if err != nil {
		return nil, err
	}
	return newQueryIterator(s.log, rows)
}

// Sink behaves the same as SinkCtx, except that it will use context.Background as the context.
func (s *SqliteStore) Sink(iter iterator.Iterator[entries.LogEntry], table string) error {
	return s.SinkCtx(context.Background(), iter, table)
}

// SinkCtx appends every entry from the iterator to the given table, creating
// the table and any missing columns on the fly. In case of an error the
// iterator is drained to prevent upstream blocking.
func (s *SqliteStore) SinkCtx(ctx context.Context, iter iterator.Iterator[entries.LogEntry], table string) error {
	if !tablePattern.MatchString(table) {
		return fmt.Errorf("%w: %s", ErrBadTable, table)
	}
	log := s.log.With("table", table).Named("sink")
	log.Debug("Establishing connection")
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
		log.Debug("DB connection closed")
	}()

	log.Debug("Ensuring the specified table is present")
	if _, err := conn.ExecContext(ctx, fmt.Sprintf(createTable, table)); err != nil {
		iterator.Drain(iter)
		return err
	}
	cols, err := s.tableColumns(ctx, conn, table)
	if err != nil {
		iterator.Drain(iter)
		return err
	}

	log.Debug("Starting sink operation")
	err = iter.Iterate(func(entry entries.LogEntry, i int) error {
		if ctx.Err() != nil {
			return iterator.ErrStopIteration
		}
		return s.insert(ctx, log, conn, table, entry, cols)
	})
	if err != nil {
		log.Error("Error sinking to DB, draining iterator", "error", err)
		iterator.Drain(iter)
		return err
	}
	return nil
}

func (s *SqliteStore) insert(ctx context.Context, log hclog.Logger, conn *sql.Conn, table string, entry entries.LogEntry, cols map[string]bool) error {
	fields := make([]string, 0, len(entry))
	for f := range entry {
		if !cols[f] {
			log.Debug("New field discovered, adding to table", "field", f)
			if err := s.addColumn(ctx, conn, table, f); err != nil {
				log.Error("Failed to add field to table", "field", f, "error", err)
				return err
			}
			cols[f] = true
		}
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var into, params strings.Builder
	args := make([]any, len(fields))
	for i, f := range fields {
		if i > 0 {
			into.WriteString(",")
			params.WriteString(",")
		}
		into.WriteString(`"` + f + `"`)
		params.WriteString("?")
		str, ok := entry.AsString(f)
		if !ok {
			log.Warn("Field not able to be coerced to string", "field", f)
		}
		args[i] = str
	}
	query := fmt.Sprintf("insert into %s (%s) values (%s)", table, into.String(), params.String())
	log.Debug("Inserting log entry into table", "query", query)
	if _, err := conn.ExecContext(ctx, query, args...); err != nil {
		log.Error("Failed to insert into table", "error", err)
		return err
	}
	return nil
}

func (s *SqliteStore) tableColumns(ctx context.Context, conn *sql.Conn, table string) (map[string]bool, error) {
	rows, err := conn.QueryContext(ctx, "select * from "+table+" limit 0")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	colMap := make(map[string]bool, len(cols))
	for _, c := range cols {
		colMap[c] = true
	}
	return colMap, nil
}

func (s *SqliteStore) addColumn(ctx context.Context, conn *sql.Conn, table string, colName string) error {
	_, err := conn.ExecContext(ctx, fmt.Sprintf(`alter table %s add column "%s" text null`, table, colName))
	return err
}
