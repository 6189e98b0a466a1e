package sqlrender

// Renderer defines the interface for SQL dialect-specific rendering.
// Every package under pkg/ provides an implementation.
type Renderer interface {
	// Render converts a SELECT model to dialect-specific SQL.
	Render(q *SelectQuery) (string, error)

	// RenderUnion converts a UNION model to dialect-specific SQL.
	RenderUnion(q *UnionQuery) (string, error)

	// Capabilities returns the features the dialect supports.
	Capabilities() Capabilities
}
