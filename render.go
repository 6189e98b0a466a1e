package sqlrender

import "github.com/zoobzio/sqlrender/internal/render"

// Render converts a SELECT model to SQL for the dialect described by caps.
// It is the entry point for callers that assemble their own Capabilities;
// the dialect packages call it with theirs.
func Render(q *SelectQuery, caps Capabilities) (string, error) {
	return render.Select(q, caps)
}

// RenderUnion converts a UNION model to SQL for the dialect described by caps.
func RenderUnion(q *UnionQuery, caps Capabilities) (string, error) {
	return render.Union(q, caps)
}

// StandardLimit appends "LIMIT n" and "OFFSET m" clauses. It is the rewrite
// used when Capabilities.Limit is nil.
func StandardLimit(sql string, maxResults *int, firstResult int) string {
	return render.StandardLimit(sql, maxResults, firstResult)
}

// OffsetFetch appends "OFFSET m ROWS" and "FETCH NEXT n ROWS ONLY" clauses.
func OffsetFetch(sql string, maxResults *int, firstResult int) string {
	return render.OffsetFetch(sql, maxResults, firstResult)
}
