package store

import (
	"database/sql"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/peeklog/pkg/entries"
	"github.com/saylorsolutions/peeklog/pkg/iterator"
)

const (
	createTable = `
create table if not exists %s (
	evt_id integer primary key
)`
	idColumn = "evt_id"
)

func newQueryIterator(log hclog.Logger, rows *sql.Rows) (iterator.Iterator[entries.LogEntry], error) {
	cols, err := rows.Columns()
	if err != nil {
		log.Error("Failed to query row columns", "error", err)
		_ = rows.Close()
		return nil, err
	}
	var rowNum int

	return iterator.Func(func() (entries.LogEntry, int, error) {
		if !rows.Next() {
			_ = rows.Close()
			return iterator.End[entries.LogEntry]()
		}

		vals := make([]any, len(cols))
		for i := range vals {
			vals[i] = &sql.NullString{}
		}
		if err := rows.Scan(vals...); err != nil {
			_ = rows.Close()
			return iterator.Err[entries.LogEntry](err)
		}

		entry := entries.LogEntry{}
		for i, v := range vals {
			if cols[i] == idColumn {
				continue
			}
			if s := v.(*sql.NullString); s.Valid {
				entry[cols[i]] = s.String
			}
		}
		cur := rowNum
		rowNum++
		return entry, cur, nil
	}), nil
}
