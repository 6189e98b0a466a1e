// Package render assembles structured queries into dialect-specific SQL.
//
// Rendering is a pure function of a query model and a Capabilities value.
// Dialect packages supply the Capabilities; nothing here branches on a
// dialect name.
package render

import (
	"strings"

	"github.com/zoobzio/sqlrender/internal/types"
)

// Select renders a SELECT statement for the dialect described by caps.
// On error the returned SQL is empty.
func Select(q *types.SelectQuery, caps Capabilities) (string, error) {
	if err := q.Validate(); err != nil {
		return "", NewInvalidQueryError(err)
	}
	return renderSelect(q, caps)
}

func renderSelect(q *types.SelectQuery, caps Capabilities) (string, error) {
	parts := make([]string, 0, 10)

	if len(q.With) > 0 {
		if !caps.SupportsCommonTableExpressions() {
			return "", NewUnsupportedFeatureError(caps.dialectName(), FeatureWith)
		}

		with, err := renderWith(q.With, caps)
		if err != nil {
			return "", err
		}
		parts = append(parts, "WITH")
		if hasRecursive(q.With) {
			parts = append(parts, "RECURSIVE")
		}
		parts = append(parts, with)
	}

	parts = append(parts, "SELECT")
	if q.Distinct {
		parts = append(parts, "DISTINCT")
	}
	parts = append(parts, strings.Join(q.Columns, ", "))

	if len(q.From) > 0 {
		parts = append(parts, "FROM "+strings.Join(q.From, ", "))
	}
	if q.Where != "" {
		parts = append(parts, "WHERE "+q.Where)
	}
	if len(q.GroupBy) > 0 {
		parts = append(parts, "GROUP BY "+strings.Join(q.GroupBy, ", "))
	}
	if q.Having != "" {
		parts = append(parts, "HAVING "+q.Having)
	}
	if len(q.OrderBy) > 0 {
		parts = append(parts, "ORDER BY "+strings.Join(q.OrderBy, ", "))
	}

	sql := strings.Join(parts, " ")
	sql = applyLimit(sql, q.Limit, caps)

	if q.ForUpdate != nil {
		suffix, ok := caps.ForUpdateSuffix()
		if !ok {
			return "", NewUnsupportedFeatureError(caps.dialectName(), FeatureForUpdate)
		}
		sql += " " + suffix

		if q.ForUpdate.Mode == types.SkipLocked {
			skip, ok := caps.SkipLockedSuffix()
			if !ok {
				return "", NewUnsupportedFeatureError(caps.dialectName(), FeatureSkipLocked)
			}
			sql += " " + skip
		}
	}

	return sql, nil
}

// applyLimit hands the finished statement to the dialect's rewriter.
// Some dialects wrap the whole statement, so this must run after every
// clause up to ORDER BY has been assembled.
func applyLimit(sql string, limit types.Limit, caps Capabilities) string {
	if !limit.IsDefined() {
		return sql
	}
	maxResults, firstResult := limit.Values()
	return caps.RewriteForLimit(sql, maxResults, firstResult)
}

// renderPart renders a union branch or CTE body.
func renderPart(p types.Part, caps Capabilities) (string, error) {
	switch p.Kind {
	case types.PartNested:
		return renderSelect(p.Query, caps)
	default:
		return p.SQL, nil
	}
}
