package core

import (
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// DatabaseNamer exposes the active database name that table-scoped DDL
// qualifies table names with.
type DatabaseNamer interface {
	DatabaseName() string
}

// StaticDatabase is a fixed database name.
type StaticDatabase string

// DatabaseName returns the name itself.
func (s StaticDatabase) DatabaseName() string {
	return string(s)
}

// MySQLDatabase reads the database name from a go-sql-driver/mysql DSN,
// for example "user:pass@tcp(localhost:3306)/app?parseTime=true".
func MySQLDatabase(dsn string) (DatabaseNamer, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, WrapError(err, "parse mysql dsn")
	}
	return StaticDatabase(cfg.DBName), nil
}

// PostgresDatabase reads the database name from a lib/pq connection URL
// ("postgres://user@host/app?sslmode=disable") or a libpq keyword/value
// string ("host=localhost dbname=app"). PG* environment defaults apply.
func PostgresDatabase(conn string) (DatabaseNamer, error) {
	if strings.HasPrefix(conn, "postgres://") || strings.HasPrefix(conn, "postgresql://") {
		parsed, err := pq.ParseURL(conn)
		if err != nil {
			return nil, WrapError(err, "parse postgres url")
		}
		conn = parsed
	}

	cfg, err := pgconn.ParseConfig(conn)
	if err != nil {
		return nil, WrapError(err, "parse postgres connection string")
	}
	return StaticDatabase(cfg.Database), nil
}
