package dbconn

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/cockroachdb/sheetcmp/sheetload"
	"github.com/jackc/pgx/v5"
)

type PGConn struct {
	id ID
	*pgx.Conn
	version     string
	connStr     string
	isCockroach bool
}

var _ Conn = (*PGConn)(nil)

func ConnectPG(ctx context.Context, id ID, connStr string) (*PGConn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, errors.Wrapf(err, "error connecting to %s", redact(connStr))
	}
	var version string
	if err := conn.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return nil, errors.CombineErrors(errors.Wrap(err, "error getting version"), conn.Close(ctx))
	}
	return &PGConn{
		id:          id,
		Conn:        conn,
		version:     version,
		connStr:     connStr,
		isCockroach: strings.Contains(version, "CockroachDB"),
	}, nil
}

func (c *PGConn) ID() ID {
	return c.id
}

func (c *PGConn) IsCockroach() bool {
	return c.isCockroach
}

func (c *PGConn) ConnStr() string {
	return c.connStr
}

func (c *PGConn) Dialect() string {
	if c.IsCockroach() {
		return "CockroachDB"
	}
	return "PostgreSQL"
}

func (c *PGConn) QueryTable(ctx context.Context, name string, query string) (*sheet.Table, error) {
	rows, err := c.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	raw := make([]string, len(fds))
	for i, fd := range fds {
		raw[i] = fd.Name
	}
	t := sheet.NewTable(name, sheetload.ColumnNames(raw)...)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, errors.Wrap(err, "error decoding row")
		}
		converted := make([]sheet.Value, len(vals))
		for i, v := range vals {
			if converted[i], err = ConvertValue(v); err != nil {
				return nil, errors.Wrapf(err, "error converting column %s", raw[i])
			}
		}
		if err := t.AppendRow(converted...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading rows")
	}
	return t, nil
}
