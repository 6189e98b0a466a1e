package sqlrender

import (
	"fmt"
	"strings"

	"github.com/zoobzio/sqlrender/internal/render"
	"github.com/zoobzio/sqlrender/internal/types"
)

// Builder provides a fluent API for constructing SELECT queries.
// The first error encountered is kept and returned by Build; later calls
// become no-ops.
//
//nolint:govet // fieldalignment: readability over padding
type Builder struct {
	distinct  bool
	columns   []string
	from      []string
	where     *predicate
	groupBy   []string
	having    *predicate
	orderBy   []string
	limit     types.Limit
	forUpdate *types.ForUpdate
	with      []types.CTE
	schema    *Schema
	err       error
}

// Select creates a new SELECT query builder.
func Select(columns ...string) *Builder {
	return &Builder{columns: append([]string(nil), columns...)}
}

// GetError returns the builder's error, if any.
func (b *Builder) GetError() error {
	return b.err
}

// Select replaces the column list.
func (b *Builder) Select(columns ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.columns = append([]string(nil), columns...)
	return b
}

// AddSelect appends to the column list.
func (b *Builder) AddSelect(columns ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.columns = append(b.columns, columns...)
	return b
}

// Distinct sets the DISTINCT flag.
func (b *Builder) Distinct() *Builder {
	if b.err != nil {
		return b
	}
	b.distinct = true
	return b
}

// From replaces the source list with a single table or CTE, optionally
// aliased.
func (b *Builder) From(table string, alias ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.from = nil
	return b.AddFrom(table, alias...)
}

// AddFrom appends a table or CTE to the source list, optionally aliased.
func (b *Builder) AddFrom(table string, alias ...string) *Builder {
	if b.err != nil {
		return b
	}
	if table == "" {
		b.err = fmt.Errorf("FROM requires a table name")
		return b
	}
	if b.schema != nil && !b.hasCTE(table) {
		if err := b.schema.validateTable(table); err != nil {
			b.err = err
			return b
		}
	}

	source := table
	if len(alias) > 0 && alias[0] != "" {
		source += " " + alias[0]
	}
	b.from = append(b.from, source)
	return b
}

// Where replaces the WHERE predicate.
func (b *Builder) Where(predicates ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.where = newPredicate(logicAnd, predicates...)
	return b
}

// AndWhere adds predicates to WHERE with AND.
func (b *Builder) AndWhere(predicates ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.where = b.where.combine(logicAnd, predicates...)
	return b
}

// OrWhere adds predicates to WHERE with OR.
func (b *Builder) OrWhere(predicates ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.where = b.where.combine(logicOr, predicates...)
	return b
}

// GroupBy replaces the grouping list.
func (b *Builder) GroupBy(expressions ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.groupBy = append([]string(nil), expressions...)
	return b
}

// AddGroupBy appends to the grouping list.
func (b *Builder) AddGroupBy(expressions ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.groupBy = append(b.groupBy, expressions...)
	return b
}

// Having replaces the HAVING predicate.
func (b *Builder) Having(predicates ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.having = newPredicate(logicAnd, predicates...)
	return b
}

// AndHaving adds predicates to HAVING with AND.
func (b *Builder) AndHaving(predicates ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.having = b.having.combine(logicAnd, predicates...)
	return b
}

// OrHaving adds predicates to HAVING with OR.
func (b *Builder) OrHaving(predicates ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.having = b.having.combine(logicOr, predicates...)
	return b
}

// OrderBy replaces the ordering with a single expression and optional
// direction.
func (b *Builder) OrderBy(sort string, order ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.orderBy = nil
	return b.AddOrderBy(sort, order...)
}

// AddOrderBy appends an ordering expression and optional direction.
func (b *Builder) AddOrderBy(sort string, order ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.orderBy = appendOrderBy(b.orderBy, sort, order)
	return b
}

// SetMaxResults bounds the number of rows returned.
func (b *Builder) SetMaxResults(n int) *Builder {
	if b.err != nil {
		return b
	}
	b.limit = b.limit.WithMaxResults(n)
	return b
}

// ClearMaxResults removes the row bound, keeping any offset.
func (b *Builder) ClearMaxResults() *Builder {
	if b.err != nil {
		return b
	}
	b.limit = b.limit.WithoutMaxResults()
	return b
}

// SetFirstResult sets the number of rows to skip.
func (b *Builder) SetFirstResult(n int) *Builder {
	if b.err != nil {
		return b
	}
	b.limit = b.limit.WithFirstResult(n)
	return b
}

// ForUpdate requests row locking. The default mode is Ordinary.
func (b *Builder) ForUpdate(mode ...ConflictMode) *Builder {
	if b.err != nil {
		return b
	}
	fu := &types.ForUpdate{Mode: types.Ordinary}
	if len(mode) > 0 {
		fu.Mode = mode[0]
	}
	b.forUpdate = fu
	return b
}

// CTEOption configures a WITH entry.
type CTEOption func(*types.CTE)

// Columns sets the CTE column list.
func Columns(columns ...string) CTEOption {
	return func(c *types.CTE) {
		c.Columns = append([]string(nil), columns...)
	}
}

// DependsOn records the CTEs this entry reads from. It does not affect
// output order; see OrderCTEs.
func DependsOn(names ...string) CTEOption {
	return func(c *types.CTE) {
		c.DependsOn = append([]string(nil), names...)
	}
}

// Recursive marks the entry recursive, which makes the clause WITH RECURSIVE.
func Recursive() CTEOption {
	return func(c *types.CTE) {
		c.Recursive = true
	}
}

// With appends a CTE whose body is the given part.
func (b *Builder) With(name string, body Part, opts ...CTEOption) *Builder {
	if b.err != nil {
		return b
	}
	if b.hasCTE(name) {
		b.err = fmt.Errorf("duplicate CTE name %q", name)
		return b
	}

	cte := types.CTE{Name: name, Body: body}
	for _, opt := range opts {
		opt(&cte)
	}
	b.with = append(b.with, cte)
	return b
}

// WithQuery appends a CTE whose body is built by sub.
func (b *Builder) WithQuery(name string, sub *Builder, opts ...CTEOption) *Builder {
	if b.err != nil {
		return b
	}
	q, err := sub.Build()
	if err != nil {
		b.err = fmt.Errorf("CTE %q: %w", name, err)
		return b
	}
	return b.With(name, types.NestedPart(q), opts...)
}

func (b *Builder) hasCTE(name string) bool {
	for i := range b.with {
		if b.with[i].Name == name {
			return true
		}
	}
	return false
}

// Build returns the query model. The model shares no slices with the
// builder, so the builder may be reused.
func (b *Builder) Build() (*SelectQuery, error) {
	if b.err != nil {
		return nil, b.err
	}

	q := &types.SelectQuery{
		Distinct: b.distinct,
		Columns:  append([]string(nil), b.columns...),
		From:     append([]string(nil), b.from...),
		Where:    b.where.String(),
		GroupBy:  append([]string(nil), b.groupBy...),
		Having:   b.having.String(),
		OrderBy:  append([]string(nil), b.orderBy...),
		Limit:    b.limit,
		With:     append([]types.CTE(nil), b.with...),
	}
	if b.forUpdate != nil {
		fu := *b.forUpdate
		q.ForUpdate = &fu
	}

	if err := q.Validate(); err != nil {
		return nil, render.NewInvalidQueryError(err)
	}
	return q, nil
}

// MustBuild returns the query model or panics on error.
func (b *Builder) MustBuild() *SelectQuery {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}

// Render builds the query and renders it with r.
func (b *Builder) Render(r Renderer) (string, error) {
	q, err := b.Build()
	if err != nil {
		return "", err
	}
	return r.Render(q)
}

// MustRender builds and renders the query or panics on error.
func (b *Builder) MustRender(r Renderer) string {
	sql, err := b.Render(r)
	if err != nil {
		panic(err)
	}
	return sql
}

// Part builds the query and wraps it for use as a UNION branch or CTE body.
func (b *Builder) Part() (Part, error) {
	q, err := b.Build()
	if err != nil {
		return Part{}, err
	}
	return types.NestedPart(q), nil
}

func appendOrderBy(orderBy []string, sort string, order []string) []string {
	if len(order) > 0 && order[0] != "" {
		sort += " " + strings.ToUpper(order[0])
	}
	return append(orderBy, sort)
}
