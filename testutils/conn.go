package testutils

import (
	"context"
	"os"
	"testing"

	"github.com/cockroachdb/sheetcmp/dbconn"
	"github.com/stretchr/testify/require"
)

// PGConnStr returns the PostgreSQL or CockroachDB URL tests should use,
// skipping the test if POSTGRES_URL is not set.
func PGConnStr(t *testing.T) string {
	return connStrFromEnv(t, "POSTGRES_URL")
}

// MySQLConnStr returns the MySQL URL tests should use, skipping the test if
// MYSQL_URL is not set.
func MySQLConnStr(t *testing.T) string {
	return connStrFromEnv(t, "MYSQL_URL")
}

func connStrFromEnv(t *testing.T, env string) string {
	s, ok := os.LookupEnv(env)
	if !ok || s == "" {
		t.Skipf("%s not set", env)
	}
	return s
}

// ExecConn runs each statement against conn, failing the test on error.
func ExecConn(t *testing.T, conn dbconn.Conn, stmts ...string) {
	ctx := context.Background()
	for _, stmt := range stmts {
		switch conn := conn.(type) {
		case *dbconn.PGConn:
			_, err := conn.Exec(ctx, stmt)
			require.NoError(t, err, "[%s] %s", conn.Dialect(), stmt)
		case *dbconn.MySQLConn:
			_, err := conn.ExecContext(ctx, stmt)
			require.NoError(t, err, "[%s] %s", conn.Dialect(), stmt)
		default:
			t.Fatalf("unhandled Conn type: %T", conn)
		}
	}
}
