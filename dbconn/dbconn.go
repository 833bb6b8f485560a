// Package dbconn loads tables from SQL databases so that query results can
// be compared like spreadsheets.
package dbconn

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/cockroachdb/sheetcmp/sheetload"
)

type ID string

type Conn interface {
	ID() ID
	// Close closes the connection.
	Close(ctx context.Context) error
	// QueryTable runs query and returns its result set as a table called name.
	QueryTable(ctx context.Context, name string, query string) (*sheet.Table, error)

	ConnStr() string
	Dialect() string
}

// IsConnString reports whether s looks like a database URL rather than a file
// path.
func IsConnString(s string) bool {
	scheme, _, ok := strings.Cut(s, "://")
	if !ok {
		return false
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql", "mysql", "jdbc:mysql":
		return true
	}
	return false
}

func Connect(ctx context.Context, preferredID ID, connStr string) (Conn, error) {
	if len(connStr) == 0 {
		return nil, errors.Newf("empty connection string")
	}
	id := preferredID
	if id == "" {
		id = ID(connStr)
	}
	before := strings.SplitN(connStr, "://", 2)
	switch {
	case strings.Contains(before[0], "postgres"):
		return ConnectPG(ctx, id, connStr)
	case strings.Contains(before[0], "mysql"):
		return ConnectMySQL(ctx, id, connStr)
	}
	return nil, errors.Newf("unrecognised scheme %s from %s", before[0], redact(connStr))
}

// Load connects to connStr, runs query and closes the connection. Failures
// are marked as sheetload.ErrUnreadableSource so callers treat them like any
// other table that could not be loaded.
func Load(ctx context.Context, id ID, connStr string, query string) (*sheet.Table, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.Mark(
			errors.Newf("a query is required to load a table from %s", redact(connStr)),
			sheetload.ErrUnreadableSource,
		)
	}
	conn, err := Connect(ctx, id, connStr)
	if err != nil {
		return nil, errors.Mark(err, sheetload.ErrUnreadableSource)
	}
	t, err := conn.QueryTable(ctx, string(id), query)
	if err != nil {
		return nil, errors.CombineErrors(
			errors.Mark(errors.Wrapf(err, "error querying %s", id), sheetload.ErrUnreadableSource),
			conn.Close(ctx),
		)
	}
	return t, conn.Close(ctx)
}

// redact hides the password of a URL-style connection string.
func redact(connStr string) string {
	scheme, rest, ok := strings.Cut(connStr, "://")
	if !ok {
		return connStr
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return connStr
	}
	user, _, hasPass := strings.Cut(rest[:at], ":")
	if !hasPass {
		return connStr
	}
	return scheme + "://" + user + ":xxxxx" + rest[at:]
}
