// Package sqlite provides the SQLite dialect renderer for sqlrender.
package sqlite

import (
	"github.com/zoobzio/sqlrender/internal/render"
	"github.com/zoobzio/sqlrender/internal/types"
)

// Name is the dialect name reported in errors.
const Name = "sqlite"

// Renderer implements the SQLite dialect renderer.
type Renderer struct {
	caps render.Capabilities
}

// New creates a new SQLite renderer.
// SQLite has no row locking, so FOR UPDATE and SKIP LOCKED are rejected.
func New() *Renderer {
	return &Renderer{
		caps: render.Capabilities{
			Dialect:                Name,
			CommonTableExpressions: true,
			Limit:                  Limit,
		},
	}
}

// Render converts a SELECT model to SQLite SQL.
func (r *Renderer) Render(q *types.SelectQuery) (string, error) {
	return render.Select(q, r.caps)
}

// RenderUnion converts a UNION model to SQLite SQL.
func (r *Renderer) RenderUnion(q *types.UnionQuery) (string, error) {
	return render.Union(q, r.caps)
}

// Capabilities returns the SQL features supported by SQLite.
func (r *Renderer) Capabilities() render.Capabilities {
	return r.caps
}

// Limit appends LIMIT and OFFSET. SQLite requires LIMIT before OFFSET,
// so an offset alone is paired with LIMIT -1.
func Limit(sql string, maxResults *int, firstResult int) string {
	if maxResults == nil && firstResult > 0 {
		unbounded := -1
		maxResults = &unbounded
	}
	return render.StandardLimit(sql, maxResults, firstResult)
}
