// Package integration runs rendered SQL against real databases.
//
// SQLite tests run in-process. PostgreSQL, MariaDB and SQL Server tests
// start one shared container per engine on first use; all are skipped in
// short mode.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	_ "github.com/microsoft/go-mssqldb"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mariadb"
	"github.com/testcontainers/testcontainers-go/modules/mssql"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	container *postgres.PostgresContainer
	conn      *pgx.Conn
	connStr   string
}

// SQLContainer wraps a testcontainers instance reached through database/sql.
type SQLContainer struct {
	container testcontainers.Container
	db        *sql.DB
}

// Shared containers - lazily initialized
var (
	sharedPostgres *PostgresContainer
	sharedMariaDB  *SQLContainer
	sharedMSSQL    *SQLContainer

	pgOnce      sync.Once
	mariadbOnce sync.Once
	mssqlOnce   sync.Once

	cleanupMu sync.Mutex
	cleanups  []func(context.Context)
)

func registerCleanup(fn func(context.Context)) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanups = append(cleanups, fn)
}

// TestMain tears down whichever shared containers the tests started.
func TestMain(m *testing.M) {
	// testing.Short() is not available until flags are parsed in m.Run,
	// so each test checks short mode itself.
	code := m.Run()

	ctx := context.Background()
	cleanupMu.Lock()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i](ctx)
	}
	cleanupMu.Unlock()

	os.Exit(code)
}

// skipShort skips database tests in short mode.
func skipShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// getPostgresContainer returns the shared PostgreSQL container, starting it if needed.
func getPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	pgOnce.Do(func() {
		ctx := context.Background()

		container, err := postgres.Run(ctx,
			"docker.io/postgres:16-alpine",
			postgres.WithDatabase("sqlrender_test"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second),
			),
		)
		if err != nil {
			log.Fatalf("Failed to start postgres container: %v", err)
		}
		registerCleanup(func(ctx context.Context) { _ = container.Terminate(ctx) })

		connStr, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			log.Fatalf("Failed to get connection string: %v", err)
		}

		conn, err := pgx.Connect(ctx, connStr)
		if err != nil {
			log.Fatalf("Failed to connect to postgres: %v", err)
		}
		registerCleanup(func(ctx context.Context) { _ = conn.Close(ctx) })

		sharedPostgres = &PostgresContainer{container: container, conn: conn, connStr: connStr}
	})

	return sharedPostgres
}

// getMariaDBContainer returns the shared MariaDB container, starting it if needed.
func getMariaDBContainer(t *testing.T) *SQLContainer {
	t.Helper()

	mariadbOnce.Do(func() {
		ctx := context.Background()

		container, err := mariadb.Run(ctx,
			"docker.io/mariadb:11",
			mariadb.WithDatabase("sqlrender_test"),
			mariadb.WithUsername("test"),
			mariadb.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("mariadbd: ready for connections").
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			log.Fatalf("Failed to start mariadb container: %v", err)
		}
		registerCleanup(func(ctx context.Context) { _ = container.Terminate(ctx) })

		connStr, err := container.ConnectionString(ctx)
		if err != nil {
			log.Fatalf("Failed to get connection string: %v", err)
		}

		sharedMariaDB = &SQLContainer{container: container, db: openSQL("mysql", connStr, 30)}
	})

	return sharedMariaDB
}

// getMSSQLContainer returns the shared SQL Server container, starting it if needed.
func getMSSQLContainer(t *testing.T) *SQLContainer {
	t.Helper()

	mssqlOnce.Do(func() {
		ctx := context.Background()

		container, err := mssql.Run(ctx,
			"mcr.microsoft.com/mssql/server:2022-latest",
			mssql.WithAcceptEULA(),
			mssql.WithPassword("Test@12345"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("SQL Server is now ready for client connections").
					WithStartupTimeout(120*time.Second),
			),
		)
		if err != nil {
			log.Fatalf("Failed to start mssql container: %v", err)
		}
		registerCleanup(func(ctx context.Context) { _ = container.Terminate(ctx) })

		connStr, err := container.ConnectionString(ctx)
		if err != nil {
			log.Fatalf("Failed to get connection string: %v", err)
		}

		sharedMSSQL = &SQLContainer{container: container, db: openSQL("sqlserver", connStr, 60)}
	})

	return sharedMSSQL
}

// openSQL opens a database/sql pool and waits up to attempts seconds for
// the server to answer.
func openSQL(driver, connStr string, attempts int) *sql.DB {
	db, err := sql.Open(driver, connStr)
	if err != nil {
		log.Fatalf("Failed to open %s connection: %v", driver, err)
	}
	registerCleanup(func(context.Context) { _ = db.Close() })

	for i := 0; i < attempts; i++ {
		if err := db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	return db
}

// Exec executes a SQL statement.
func (c *SQLContainer) Exec(ctx context.Context, t *testing.T, query string, args ...any) {
	t.Helper()
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, query)
	}
}

// Column runs query and collects the first column of every row as text.
func (c *SQLContainer) Column(ctx context.Context, t *testing.T, query string, args ...any) []string {
	t.Helper()
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		t.Fatalf("Failed to execute query: %v\nSQL: %s", err, query)
	}
	return scanColumn(t, rows, query)
}

// ServerVersion returns the server's self-reported version string.
func (c *SQLContainer) ServerVersion(ctx context.Context, t *testing.T, query string) string {
	t.Helper()
	var v string
	if err := c.db.QueryRowContext(ctx, query).Scan(&v); err != nil {
		t.Fatalf("Failed to read server version: %v", err)
	}
	return v
}

// Exec executes a SQL statement.
func (pc *PostgresContainer) Exec(ctx context.Context, t *testing.T, query string, args ...any) {
	t.Helper()
	if _, err := pc.conn.Exec(ctx, query, args...); err != nil {
		t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, query)
	}
}

// Column runs query and collects the first column of every row as text.
func (pc *PostgresContainer) Column(ctx context.Context, t *testing.T, query string, args ...any) []string {
	t.Helper()
	rows, err := pc.conn.Query(ctx, query, args...)
	if err != nil {
		t.Fatalf("Failed to execute query: %v\nSQL: %s", err, query)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			t.Fatalf("Failed to scan row: %v\nSQL: %s", err, query)
		}
		values = append(values, toText(v))
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Row iteration failed: %v\nSQL: %s", err, query)
	}
	return values
}

func scanColumn(t *testing.T, rows *sql.Rows, query string) []string {
	t.Helper()
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			t.Fatalf("Failed to scan row: %v\nSQL: %s", err, query)
		}
		values = append(values, toText(v))
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Row iteration failed: %v\nSQL: %s", err, query)
	}
	return values
}

func toText(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

func assertValues(t *testing.T, expected, actual []string) {
	t.Helper()
	if strings.Join(expected, ",") != strings.Join(actual, ",") {
		t.Errorf("Row mismatch:\nExpected: %v\nActual:   %v", expected, actual)
	}
}
