// Package testing provides test utilities for sqlrender.
package testing

import (
	"strings"
	"sync"
	"testing"

	"github.com/zoobzio/dbml"

	"github.com/zoobzio/sqlrender"
	"github.com/zoobzio/sqlrender/pkg/dialect"
)

// TestSchema creates a schema for testing.
// Includes users, posts, comments, orders, and products tables.
func TestSchema(t *testing.T) *sqlrender.Schema {
	t.Helper()

	project := dbml.NewProject("test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	users.AddColumn(dbml.NewColumn("created_at", "timestamp"))
	project.AddTable(users)

	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "bigint"))
	posts.AddColumn(dbml.NewColumn("user_id", "bigint"))
	posts.AddColumn(dbml.NewColumn("title", "varchar"))
	posts.AddColumn(dbml.NewColumn("published", "boolean"))
	posts.AddColumn(dbml.NewColumn("views", "int"))
	project.AddTable(posts)

	comments := dbml.NewTable("comments")
	comments.AddColumn(dbml.NewColumn("id", "bigint"))
	comments.AddColumn(dbml.NewColumn("post_id", "bigint"))
	comments.AddColumn(dbml.NewColumn("body", "text"))
	project.AddTable(comments)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	project.AddTable(orders)

	products := dbml.NewTable("products")
	products.AddColumn(dbml.NewColumn("id", "bigint"))
	products.AddColumn(dbml.NewColumn("name", "varchar"))
	products.AddColumn(dbml.NewColumn("stock", "int"))
	project.AddTable(products)

	schema, err := sqlrender.NewFromDBML(project)
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}
	return schema
}

// Renderers returns the newest-server renderer of every dialect, keyed by
// canonical name.
func Renderers(t testing.TB) map[string]sqlrender.Renderer {
	t.Helper()

	renderers := make(map[string]sqlrender.Renderer)
	for _, name := range dialect.Names() {
		r, err := dialect.Resolve(name, "")
		if err != nil {
			t.Fatalf("Failed to resolve dialect %s: %v", name, err)
		}
		renderers[name] = r
	}
	return renderers
}

// LimitCall is one recorded invocation of a LimitFunc.
type LimitCall struct {
	SQL         string
	MaxResults  *int
	FirstResult int
}

// LimitRecorder records the arguments a renderer passes to its limit
// rewrite and wraps the statement so tests can see where it was applied.
type LimitRecorder struct {
	mu    sync.Mutex
	calls []LimitCall
}

// Func returns a LimitFunc that records each call and returns
// "LIMITED(<sql>)".
func (r *LimitRecorder) Func() sqlrender.LimitFunc {
	return func(sql string, maxResults *int, firstResult int) string {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, LimitCall{SQL: sql, MaxResults: maxResults, FirstResult: firstResult})
		return "LIMITED(" + sql + ")"
	}
}

// Calls returns the recorded calls in order.
func (r *LimitRecorder) Calls() []LimitCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LimitCall(nil), r.calls...)
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertUnsupported checks that err reports the given unsupported feature.
func AssertUnsupported(t *testing.T, err error, feature string) {
	t.Helper()
	if !sqlrender.IsUnsupported(err) {
		t.Fatalf("Expected UnsupportedFeatureError for %s, got: %v", feature, err)
	}
	if !strings.Contains(err.Error(), feature) {
		t.Errorf("Expected unsupported feature %q, got: %v", feature, err)
	}
}

// AssertInvalid checks that err is an InvalidQueryError.
func AssertInvalid(t *testing.T, err error) {
	t.Helper()
	if !sqlrender.IsInvalid(err) {
		t.Fatalf("Expected InvalidQueryError, got: %v", err)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertPanics verifies that a function panics.
func AssertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}
