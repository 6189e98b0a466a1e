// Package db2 provides the IBM Db2 dialect renderer for sqlrender.
package db2

import (
	"strconv"
	"strings"

	"github.com/zoobzio/sqlrender/internal/render"
	"github.com/zoobzio/sqlrender/internal/types"
)

// Name is the dialect name reported in errors.
const Name = "db2"

// Renderer implements the Db2 dialect renderer.
type Renderer struct {
	caps render.Capabilities
}

// New creates a new Db2 renderer.
// Db2 locks through an isolation clause and has no SKIP LOCKED.
func New() *Renderer {
	return &Renderer{
		caps: render.Capabilities{
			Dialect:                Name,
			CommonTableExpressions: true,
			ForUpdate:              "WITH RR USE AND KEEP UPDATE LOCKS",
			Limit:                  Limit,
		},
	}
}

// Render converts a SELECT model to Db2 SQL.
func (r *Renderer) Render(q *types.SelectQuery) (string, error) {
	return render.Select(q, r.caps)
}

// RenderUnion converts a UNION model to Db2 SQL.
func (r *Renderer) RenderUnion(q *types.UnionQuery) (string, error) {
	return render.Union(q, r.caps)
}

// Capabilities returns the SQL features supported by Db2.
func (r *Renderer) Capabilities() render.Capabilities {
	return r.caps
}

// Limit wraps the statement and filters on ROW_NUMBER() OVER().
func Limit(sql string, maxResults *int, firstResult int) string {
	var where []string
	if firstResult > 0 {
		where = append(where, "db22.DC_ROWNUM >= "+strconv.Itoa(firstResult+1))
	}
	if maxResults != nil {
		where = append(where, "db22.DC_ROWNUM <= "+strconv.Itoa(firstResult+*maxResults))
	}
	if len(where) == 0 {
		return sql
	}
	return "SELECT db22.* FROM (SELECT db21.*, ROW_NUMBER() OVER() AS DC_ROWNUM FROM (" +
		sql + ") db21) db22 WHERE " + strings.Join(where, " AND ")
}
