// Package sqlrender renders structured SELECT and UNION queries to SQL for
// a range of database dialects.
//
// A query is described by a plain model (SelectQuery or UnionQuery) and
// rendered against a Capabilities record that says what the target dialect
// supports: common table expressions, row locking, SKIP LOCKED, and how
// LIMIT/OFFSET are written. Column lists, predicates and sources are opaque
// SQL fragments; this package assembles clauses, it does not parse SQL.
//
// # Basic Usage
//
// Queries are usually assembled with the fluent builder and rendered with a
// dialect package:
//
//	import "github.com/zoobzio/sqlrender/pkg/postgres"
//
//	sql, err := sqlrender.Select("id", "title").
//		From("posts", "p").
//		Where("p.published = :published").
//		OrderBy("id", "DESC").
//		SetMaxResults(10).
//		Render(postgres.New())
//	// SELECT id, title FROM posts p WHERE p.published = :published ORDER BY id DESC LIMIT 10
//
// # Dialects
//
// Available dialects: postgres, mysql, mariadb, sqlite, mssql, oracle, db2.
// The mysql, mariadb and oracle packages offer NewForVersion for servers
// whose capabilities depend on the release:
//
//	r, err := mysql.NewForVersion("5.7.44")
//	// WITH and SKIP LOCKED are rejected with UnsupportedFeatureError
//
// Requesting a feature the dialect lacks fails with UnsupportedFeatureError
// instead of emitting SQL the server would reject.
//
// # Common Table Expressions
//
// CTEs are emitted in the order they were added. DependsOn is recorded on
// each entry but never reorders output; call OrderCTEs to sort a list by its
// declared dependencies before rendering.
//
// # Schema-Validated Usage
//
// A Schema built from a DBML project rejects FROM sources that name unknown
// tables:
//
//	schema, err := sqlrender.NewFromDBML(project)
//	sql, err := schema.Select("id").From("users").Render(postgres.New())
package sqlrender

import (
	"errors"

	"github.com/zoobzio/sqlrender/internal/render"
	"github.com/zoobzio/sqlrender/internal/types"
)

// SelectQuery is the model of a SELECT statement.
type SelectQuery = types.SelectQuery

// UnionQuery is the model of a UNION of statements.
type UnionQuery = types.UnionQuery

// CTE is one named entry of a WITH clause.
type CTE = types.CTE

// Part is a UNION branch or CTE body: raw SQL or a nested SelectQuery.
type Part = types.Part

// PartKind discriminates Part.
type PartKind = types.PartKind

// Re-export part kinds for public API.
const (
	PartRaw    = types.PartRaw
	PartNested = types.PartNested
)

// Limit is an immutable LIMIT/OFFSET pair.
type Limit = types.Limit

// ForUpdate requests row locking.
type ForUpdate = types.ForUpdate

// ConflictMode controls how locked rows are treated by FOR UPDATE.
type ConflictMode = types.ConflictMode

// Re-export conflict modes for public API.
const (
	Ordinary   = types.Ordinary
	SkipLocked = types.SkipLocked
)

// Capabilities describes the SQL features supported by a dialect.
type Capabilities = render.Capabilities

// LimitFunc rewrites a statement for a dialect's limit/offset syntax.
type LimitFunc = render.LimitFunc

// UnsupportedFeatureError indicates a feature the dialect cannot express.
type UnsupportedFeatureError = render.UnsupportedFeatureError

// InvalidQueryError indicates a malformed query model.
type InvalidQueryError = render.InvalidQueryError

// Feature names carried by UnsupportedFeatureError.
const (
	FeatureWith       = render.FeatureWith
	FeatureForUpdate  = render.FeatureForUpdate
	FeatureSkipLocked = render.FeatureSkipLocked
)

// Raw creates a part from literal SQL.
func Raw(sql string) Part {
	return types.RawPart(sql)
}

// Nested creates a part from a SELECT model.
func Nested(q *SelectQuery) Part {
	return types.NestedPart(q)
}

// NoLimit returns a limit that leaves the statement unbounded.
func NoLimit() Limit {
	return types.NoLimit()
}

// NewLimit creates a limit. A nil maxResults means no maximum.
func NewLimit(maxResults *int, firstResult int) Limit {
	return types.NewLimit(maxResults, firstResult)
}

// IsUnsupported reports whether err is, or wraps, an UnsupportedFeatureError.
func IsUnsupported(err error) bool {
	var target UnsupportedFeatureError
	return errors.As(err, &target)
}

// IsInvalid reports whether err is, or wraps, an InvalidQueryError.
func IsInvalid(err error) bool {
	var target InvalidQueryError
	return errors.As(err, &target)
}
