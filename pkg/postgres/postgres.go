// Package postgres provides the PostgreSQL dialect renderer for sqlrender.
package postgres

import (
	"github.com/zoobzio/sqlrender/internal/render"
	"github.com/zoobzio/sqlrender/internal/types"
)

// Name is the dialect name reported in errors.
const Name = "postgres"

// Renderer implements the PostgreSQL dialect renderer.
type Renderer struct {
	caps render.Capabilities
}

// New creates a new PostgreSQL renderer.
func New() *Renderer {
	return &Renderer{
		caps: render.Capabilities{
			Dialect:                Name,
			CommonTableExpressions: true,
			ForUpdate:              "FOR UPDATE",
			SkipLocked:             "SKIP LOCKED",
			Limit:                  Limit,
		},
	}
}

// Render converts a SELECT model to PostgreSQL SQL.
func (r *Renderer) Render(q *types.SelectQuery) (string, error) {
	return render.Select(q, r.caps)
}

// RenderUnion converts a UNION model to PostgreSQL SQL.
func (r *Renderer) RenderUnion(q *types.UnionQuery) (string, error) {
	return render.Union(q, r.caps)
}

// Capabilities returns the SQL features supported by PostgreSQL.
func (r *Renderer) Capabilities() render.Capabilities {
	return r.caps
}

// Limit appends LIMIT and OFFSET. PostgreSQL accepts OFFSET without LIMIT.
func Limit(sql string, maxResults *int, firstResult int) string {
	return render.StandardLimit(sql, maxResults, firstResult)
}
