package sqlrender

import (
	"fmt"

	"github.com/zoobzio/sqlrender/internal/render"
	"github.com/zoobzio/sqlrender/internal/types"
)

// UnionBuilder provides a fluent API for constructing UNION queries.
type UnionBuilder struct {
	parts    []types.Part
	orderBy  []string
	limit    types.Limit
	err      error
	distinct bool
}

// Union creates a UNION (distinct rows) builder from the given parts.
func Union(parts ...Part) *UnionBuilder {
	return &UnionBuilder{distinct: true, parts: append([]types.Part(nil), parts...)}
}

// UnionAll creates a UNION ALL builder from the given parts.
func UnionAll(parts ...Part) *UnionBuilder {
	return &UnionBuilder{parts: append([]types.Part(nil), parts...)}
}

// GetError returns the builder's error, if any.
func (u *UnionBuilder) GetError() error {
	return u.err
}

// Add appends a branch.
func (u *UnionBuilder) Add(part Part) *UnionBuilder {
	if u.err != nil {
		return u
	}
	u.parts = append(u.parts, part)
	return u
}

// AddQuery appends a branch built by b.
func (u *UnionBuilder) AddQuery(b *Builder) *UnionBuilder {
	if u.err != nil {
		return u
	}
	q, err := b.Build()
	if err != nil {
		u.err = fmt.Errorf("union part %d: %w", len(u.parts), err)
		return u
	}
	return u.Add(types.NestedPart(q))
}

// OrderBy replaces the ordering applied to the combined result.
func (u *UnionBuilder) OrderBy(sort string, order ...string) *UnionBuilder {
	if u.err != nil {
		return u
	}
	u.orderBy = appendOrderBy(nil, sort, order)
	return u
}

// AddOrderBy appends to the ordering applied to the combined result.
func (u *UnionBuilder) AddOrderBy(sort string, order ...string) *UnionBuilder {
	if u.err != nil {
		return u
	}
	u.orderBy = appendOrderBy(u.orderBy, sort, order)
	return u
}

// SetMaxResults bounds the number of rows returned.
func (u *UnionBuilder) SetMaxResults(n int) *UnionBuilder {
	if u.err != nil {
		return u
	}
	u.limit = u.limit.WithMaxResults(n)
	return u
}

// SetFirstResult sets the number of rows to skip.
func (u *UnionBuilder) SetFirstResult(n int) *UnionBuilder {
	if u.err != nil {
		return u
	}
	u.limit = u.limit.WithFirstResult(n)
	return u
}

// Build returns the query model.
func (u *UnionBuilder) Build() (*UnionQuery, error) {
	if u.err != nil {
		return nil, u.err
	}

	q := &types.UnionQuery{
		Distinct: u.distinct,
		Parts:    append([]types.Part(nil), u.parts...),
		OrderBy:  append([]string(nil), u.orderBy...),
		Limit:    u.limit,
	}
	if err := q.Validate(); err != nil {
		return nil, render.NewInvalidQueryError(err)
	}
	return q, nil
}

// Render builds the query and renders it with r.
func (u *UnionBuilder) Render(r Renderer) (string, error) {
	q, err := u.Build()
	if err != nil {
		return "", err
	}
	return r.RenderUnion(q)
}

// MustRender builds and renders the query or panics on error.
func (u *UnionBuilder) MustRender(r Renderer) string {
	sql, err := u.Render(r)
	if err != nil {
		panic(err)
	}
	return sql
}
