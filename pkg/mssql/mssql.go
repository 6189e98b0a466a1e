// Package mssql provides the SQL Server dialect renderer for sqlrender.
//
// SQL Server has no LIMIT clause. Pagination is rendered as
// OFFSET ... ROWS FETCH NEXT ... ROWS ONLY, which SQL Server only accepts
// after an ORDER BY; one is added when the statement lacks a top-level
// ORDER BY. Row locking is expressed through table hints, which are outside
// the query model, so FOR UPDATE is rejected.
package mssql

import (
	"regexp"
	"strings"

	"github.com/zoobzio/sqlrender/internal/render"
	"github.com/zoobzio/sqlrender/internal/types"
)

// Name is the dialect name reported in errors.
const Name = "mssql"

var (
	orderByPattern  = regexp.MustCompile(`(?i)\s+order\s+by\s`)
	distinctPattern = regexp.MustCompile(`(?i)^SELECT\s+DISTINCT\b`)
)

// Renderer implements the SQL Server dialect renderer.
type Renderer struct {
	caps render.Capabilities
}

// New creates a new SQL Server renderer.
func New() *Renderer {
	return &Renderer{
		caps: render.Capabilities{
			Dialect:                Name,
			CommonTableExpressions: true,
			Limit:                  Limit,
		},
	}
}

// Render converts a SELECT model to SQL Server SQL.
func (r *Renderer) Render(q *types.SelectQuery) (string, error) {
	return render.Select(q, r.caps)
}

// RenderUnion converts a UNION model to SQL Server SQL.
func (r *Renderer) RenderUnion(q *types.UnionQuery) (string, error) {
	return render.Union(q, r.caps)
}

// Capabilities returns the SQL features supported by SQL Server.
func (r *Renderer) Capabilities() render.Capabilities {
	return r.caps
}

// Limit appends OFFSET/FETCH, adding an ORDER BY first when needed.
// DISTINCT statements are ordered by their first column because
// ORDER BY (SELECT 0) is rejected alongside DISTINCT. Only the SELECT after
// any WITH list decides this.
func Limit(sql string, maxResults *int, firstResult int) string {
	if maxResults == nil && firstResult <= 0 {
		return sql
	}
	if !hasTopLevelOrderBy(sql) {
		if distinctPattern.MatchString(render.MainStatement(sql)) {
			sql += " ORDER BY 1"
		} else {
			sql += " ORDER BY (SELECT 0)"
		}
	}
	return render.OffsetFetch(sql, maxResults, firstResult)
}

// hasTopLevelOrderBy reports whether sql ends with an ORDER BY that is not
// inside parentheses. An occurrence counts when the text after it has as
// many opening as closing parentheses.
func hasTopLevelOrderBy(sql string) bool {
	matches := orderByPattern.FindAllStringIndex(sql, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		rest := sql[matches[i][0]:]
		if strings.Count(rest, "(") == strings.Count(rest, ")") {
			return true
		}
	}
	return false
}
