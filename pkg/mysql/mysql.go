// Package mysql provides the MySQL dialect renderer for sqlrender.
//
// Capabilities depend on the server version: common table expressions and
// SKIP LOCKED arrived in MySQL 8.0. New assumes a current server; use
// NewForVersion when rendering for an older one.
package mysql

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-version"
	"github.com/zoobzio/sqlrender/internal/render"
	"github.com/zoobzio/sqlrender/internal/types"
)

// Name is the dialect name reported in errors.
const Name = "mysql"

// maxUnsignedBigint stands in for "no limit" since MySQL has no OFFSET
// without LIMIT.
const maxUnsignedBigint = "18446744073709551615"

var mysql80 = version.Must(version.NewVersion("8.0"))

// Renderer implements the MySQL dialect renderer.
type Renderer struct {
	caps render.Capabilities
}

// New creates a renderer for MySQL 8.0 and later.
func New() *Renderer {
	return newRenderer(mysql80)
}

// NewForVersion creates a renderer for the given server version, such as
// "5.7.44" or "8.0.36-0ubuntu0.22.04.1".
func NewForVersion(v string) (*Renderer, error) {
	ver, err := version.NewVersion(v)
	if err != nil {
		return nil, fmt.Errorf("mysql: invalid server version %q: %w", v, err)
	}
	return newRenderer(ver), nil
}

func newRenderer(ver *version.Version) *Renderer {
	modern := ver.Core().GreaterThanOrEqual(mysql80)

	caps := render.Capabilities{
		Dialect:                Name,
		CommonTableExpressions: modern,
		ForUpdate:              "FOR UPDATE",
		Limit:                  Limit,
	}
	if modern {
		caps.SkipLocked = "SKIP LOCKED"
	}
	return &Renderer{caps: caps}
}

// Render converts a SELECT model to MySQL SQL.
func (r *Renderer) Render(q *types.SelectQuery) (string, error) {
	return render.Select(q, r.caps)
}

// RenderUnion converts a UNION model to MySQL SQL.
func (r *Renderer) RenderUnion(q *types.UnionQuery) (string, error) {
	return render.Union(q, r.caps)
}

// Capabilities returns the SQL features supported by this MySQL version.
func (r *Renderer) Capabilities() render.Capabilities {
	return r.caps
}

// Limit appends LIMIT and OFFSET. An offset alone is paired with the
// largest unsigned BIGINT as the row count.
func Limit(sql string, maxResults *int, firstResult int) string {
	if maxResults != nil {
		return render.StandardLimit(sql, maxResults, firstResult)
	}
	if firstResult > 0 {
		sql += " LIMIT " + maxUnsignedBigint + " OFFSET " + strconv.Itoa(firstResult)
	}
	return sql
}
