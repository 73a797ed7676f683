// Package sqlstore provides the database/sql backed persistent store for
// products, meals and meal/product links. SQLite (modernc.org/sqlite) is the
// default driver; Postgres is served through pgx's database/sql adapter.
package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/calories/backend/internal/domain"
	"github.com/calories/backend/internal/logging"
	"github.com/rs/zerolog"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"modernc.org/sqlite"
)

const unicodeLowerFunc = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(unicodeLowerFunc, 1, func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case string:
			return strings.ToLower(v), nil
		case []byte:
			return strings.ToLower(string(v)), nil
		default:
			return v, nil
		}
	})
}

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store implements domain.Store over a *sql.DB
type Store struct {
	db     *sql.DB
	driver string
	logger zerolog.Logger
}

var _ domain.Store = (*Store)(nil)

// Open connects to the database and applies the schema
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	var (
		sqlDriver string
		schema    string
	)
	switch driver {
	case DriverSQLite, "":
		driver = DriverSQLite
		sqlDriver = "sqlite"
		schema = sqliteSchema
		if dsn == "" {
			dsn = "calories.db"
		}
		if !strings.HasPrefix(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
				return nil, fmt.Errorf("sqlstore: create dirs: %w", err)
			}
		}
	case DriverPostgres:
		sqlDriver = "pgx"
		schema = postgresSchema
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// one writer avoids SQLITE_BUSY between concurrent batches
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: apply schema: %w", err)
	}

	return &Store{
		db:     db,
		driver: driver,
		logger: logging.NewLogger("sqlstore"),
	}, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for postgres
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// insert runs an INSERT ... RETURNING id statement
func (s *Store) insert(ctx context.Context, q queryer, query string, args ...any) (int64, error) {
	var id int64
	if err := q.QueryRowContext(ctx, s.rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// execAffecting runs an update or delete and maps zero affected rows to domain.ErrNotFound
func (s *Store) execAffecting(ctx context.Context, op, entity string, id int64, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("sqlstore: %s %s %d: %w", op, entity, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: %s %s %d: %w", op, entity, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s with id %d", domain.ErrNotFound, entity, id)
	}
	return nil
}

func notFound(err error, entity string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s with id %d", domain.ErrNotFound, entity, id)
	}
	return fmt.Errorf("sqlstore: get %s %d: %w", entity, id, err)
}

// lower returns the SQL expression folding column to lower case.
// SQLite's built-in lower() is ASCII only, so names are folded in Go instead.
func (s *Store) lower(column string) string {
	if s.driver == DriverSQLite {
		return unicodeLowerFunc + "(" + column + ")"
	}
	return "LOWER(" + column + ")"
}

// likePattern builds a case-insensitive contains pattern with LIKE wildcards escaped
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(s)) + "%"
}
