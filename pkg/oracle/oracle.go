// Package oracle provides the Oracle Database dialect renderer for sqlrender.
//
// Oracle 12c introduced OFFSET/FETCH. Older servers paginate by wrapping the
// statement and filtering on ROWNUM; use NewForVersion to select that form.
package oracle

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/hashicorp/go-version"
	"github.com/zoobzio/sqlrender/internal/render"
	"github.com/zoobzio/sqlrender/internal/types"
)

// Name is the dialect name reported in errors.
const Name = "oracle"

// rownumAlias names the row number column added by RowNumLimit.
const rownumAlias = "sqlrender_rownum"

var (
	oracle12 = version.Must(version.NewVersion("12.1"))

	selectPattern = regexp.MustCompile(`(?i)^\s*(SELECT|WITH)\b`)
	fromPattern   = regexp.MustCompile(`(?i)\sFROM\s`)
)

// Renderer implements the Oracle dialect renderer.
type Renderer struct {
	caps render.Capabilities
}

// New creates a renderer for Oracle 12c and later.
func New() *Renderer {
	return newRenderer(oracle12)
}

// NewForVersion creates a renderer for the given server version, such as
// "11.2.0.4" or "19.3.0.0.0".
func NewForVersion(v string) (*Renderer, error) {
	ver, err := version.NewVersion(v)
	if err != nil {
		return nil, fmt.Errorf("oracle: invalid server version %q: %w", v, err)
	}
	return newRenderer(ver), nil
}

func newRenderer(ver *version.Version) *Renderer {
	limit := Limit
	if ver.Core().LessThan(oracle12) {
		limit = RowNumLimit
	}
	return &Renderer{
		caps: render.Capabilities{
			Dialect:                Name,
			CommonTableExpressions: true,
			ForUpdate:              "FOR UPDATE",
			SkipLocked:             "SKIP LOCKED",
			Limit:                  limit,
		},
	}
}

// Render converts a SELECT model to Oracle SQL.
func (r *Renderer) Render(q *types.SelectQuery) (string, error) {
	return render.Select(q, r.caps)
}

// RenderUnion converts a UNION model to Oracle SQL.
func (r *Renderer) RenderUnion(q *types.UnionQuery) (string, error) {
	return render.Union(q, r.caps)
}

// Capabilities returns the SQL features supported by this Oracle version.
func (r *Renderer) Capabilities() render.Capabilities {
	return r.caps
}

// Limit appends OFFSET m ROWS when skipping rows and FETCH NEXT n ROWS ONLY
// when bounded.
func Limit(sql string, maxResults *int, firstResult int) string {
	if firstResult > 0 {
		sql += " OFFSET " + strconv.Itoa(firstResult) + " ROWS"
	}
	if maxResults != nil {
		sql += " FETCH NEXT " + strconv.Itoa(*maxResults) + " ROWS ONLY"
	}
	return sql
}

// RowNumLimit wraps a statement in ROWNUM filters for servers older than
// 12c. A leading WITH list stays inside the inline view. Statements that
// start with neither SELECT nor WITH are returned unchanged.
func RowNumLimit(sql string, maxResults *int, firstResult int) string {
	if maxResults == nil && firstResult <= 0 {
		return sql
	}
	if !selectPattern.MatchString(sql) {
		return sql
	}
	if stmt := render.MainStatement(sql); stmt != "" && !fromPattern.MatchString(stmt) {
		sql += " FROM dual"
	}

	columns := "a.*"
	if firstResult > 0 {
		columns += ", ROWNUM AS " + rownumAlias
	}
	sql = "SELECT " + columns + " FROM (" + sql + ") a"
	if maxResults != nil {
		sql += " WHERE ROWNUM <= " + strconv.Itoa(firstResult+*maxResults)
	}
	if firstResult > 0 {
		sql = "SELECT * FROM (" + sql + ") WHERE " + rownumAlias + " >= " + strconv.Itoa(firstResult+1)
	}
	return sql
}
