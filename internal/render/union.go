package render

import (
	"strings"

	"github.com/zoobzio/sqlrender/internal/types"
)

const (
	unionDistinct = " UNION "
	unionAll      = " UNION ALL "
)

// Union renders a UNION of statements for the dialect described by caps.
// A single part is emitted on its own; no branch is collapsed or dropped.
func Union(q *types.UnionQuery, caps Capabilities) (string, error) {
	if err := q.Validate(); err != nil {
		return "", NewInvalidQueryError(err)
	}

	separator := unionAll
	if q.Distinct {
		separator = unionDistinct
	}

	branches := make([]string, 0, len(q.Parts))
	for _, part := range q.Parts {
		branch, err := renderPart(part, caps)
		if err != nil {
			return "", err
		}
		branches = append(branches, branch)
	}

	parts := []string{strings.Join(branches, separator)}
	if len(q.OrderBy) > 0 {
		parts = append(parts, "ORDER BY "+strings.Join(q.OrderBy, ", "))
	}

	sql := strings.Join(parts, " ")
	return applyLimit(sql, q.Limit, caps), nil
}
