// Package document decodes query documents, the YAML or JSON files the
// sqlrender command renders.
//
// A document holds exactly one statement under either a "select" or a
// "union" key:
//
//	select:
//	  columns: [id, title]
//	  from: [posts p]
//	  where: p.published = :published
//	  order_by: [id DESC]
//	  limit:
//	    max_results: 10
//
// Union branches and CTE bodies are parts. A part carries either literal SQL
// under "sql" or a nested select under "query".
package document

import (
	"errors"
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/zoobzio/sqlrender/internal/types"
)

var (
	// ErrNoStatement is returned when a document has neither a select nor a union.
	ErrNoStatement = errors.New("document must contain a select or a union")

	// ErrAmbiguousStatement is returned when a document has both a select and a union.
	ErrAmbiguousStatement = errors.New("document must not contain both a select and a union")

	// ErrAmbiguousPart is returned when a part sets both sql and query, or neither.
	ErrAmbiguousPart = errors.New("part must set exactly one of sql or query")
)

// Document is a decoded query document.
type Document struct {
	Select *SelectDoc `json:"select,omitempty"`
	Union  *UnionDoc  `json:"union,omitempty"`
}

// SelectDoc describes a SELECT statement.
//
//nolint:govet // fieldalignment: fields follow clause order
type SelectDoc struct {
	Distinct  bool          `json:"distinct,omitempty"`
	Columns   []string      `json:"columns,omitempty"`
	From      []string      `json:"from,omitempty"`
	Where     string        `json:"where,omitempty"`
	GroupBy   []string      `json:"group_by,omitempty"`
	Having    string        `json:"having,omitempty"`
	OrderBy   []string      `json:"order_by,omitempty"`
	Limit     *LimitDoc     `json:"limit,omitempty"`
	ForUpdate *ForUpdateDoc `json:"for_update,omitempty"`
	With      []CTEDoc      `json:"with,omitempty"`
}

// UnionDoc describes a UNION. Rows are distinct unless All is set.
type UnionDoc struct {
	All     bool      `json:"all,omitempty"`
	Parts   []PartDoc `json:"parts,omitempty"`
	OrderBy []string  `json:"order_by,omitempty"`
	Limit   *LimitDoc `json:"limit,omitempty"`
}

// LimitDoc holds row limits. A missing max_results means no maximum.
type LimitDoc struct {
	MaxResults  *int `json:"max_results,omitempty"`
	FirstResult int  `json:"first_result,omitempty"`
}

// ForUpdateDoc requests a locking read. Mode is "ordinary" (the default)
// or "skip_locked".
type ForUpdateDoc struct {
	Mode string `json:"mode,omitempty"`
}

// PartDoc is a union branch or CTE body.
type PartDoc struct {
	SQL   string     `json:"sql,omitempty"`
	Query *SelectDoc `json:"query,omitempty"`
}

// CTEDoc is one WITH entry. Its body fields sit beside the entry's own.
type CTEDoc struct {
	Name      string   `json:"name"`
	Columns   []string `json:"columns,omitempty"`
	DependsOn []string `json:"depends_on,omitempty"`
	Recursive bool     `json:"recursive,omitempty"`
	PartDoc
}

// Parse decodes a YAML or JSON document. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	switch {
	case doc.Select == nil && doc.Union == nil:
		return nil, ErrNoStatement
	case doc.Select != nil && doc.Union != nil:
		return nil, ErrAmbiguousStatement
	}
	return &doc, nil
}

// IsUnion reports whether the document holds a union.
func (d *Document) IsUnion() bool {
	return d.Union != nil
}

// Query converts the document to a query model. The model is not validated;
// renderers do that.
func (s *SelectDoc) Query() (*types.SelectQuery, error) {
	q := &types.SelectQuery{
		Distinct: s.Distinct,
		Columns:  s.Columns,
		From:     s.From,
		Where:    s.Where,
		GroupBy:  s.GroupBy,
		Having:   s.Having,
		OrderBy:  s.OrderBy,
		Limit:    s.Limit.limit(),
	}

	if s.ForUpdate != nil {
		mode, err := ParseConflictMode(s.ForUpdate.Mode)
		if err != nil {
			return nil, err
		}
		q.ForUpdate = &types.ForUpdate{Mode: mode}
	}

	for i := range s.With {
		cte := &s.With[i]
		body, err := cte.PartDoc.part()
		if err != nil {
			return nil, fmt.Errorf("CTE %q: %w", cte.Name, err)
		}
		q.With = append(q.With, types.CTE{
			Name:      cte.Name,
			Body:      body,
			Columns:   cte.Columns,
			DependsOn: cte.DependsOn,
			Recursive: cte.Recursive,
		})
	}

	return q, nil
}

// Query converts the document to a union model. The model is not validated;
// renderers do that.
func (u *UnionDoc) Query() (*types.UnionQuery, error) {
	q := &types.UnionQuery{
		Distinct: !u.All,
		OrderBy:  u.OrderBy,
		Limit:    u.Limit.limit(),
	}
	for i := range u.Parts {
		part, err := u.Parts[i].part()
		if err != nil {
			return nil, fmt.Errorf("union part %d: %w", i, err)
		}
		q.Parts = append(q.Parts, part)
	}
	return q, nil
}

func (p *PartDoc) part() (types.Part, error) {
	hasSQL := strings.TrimSpace(p.SQL) != ""
	if hasSQL == (p.Query != nil) {
		return types.Part{}, ErrAmbiguousPart
	}
	if hasSQL {
		return types.RawPart(p.SQL), nil
	}
	q, err := p.Query.Query()
	if err != nil {
		return types.Part{}, err
	}
	return types.NestedPart(q), nil
}

func (l *LimitDoc) limit() types.Limit {
	if l == nil {
		return types.NoLimit()
	}
	return types.NewLimit(l.MaxResults, l.FirstResult)
}

// ParseConflictMode maps a document mode name to a ConflictMode. Dashes
// and case are ignored.
func ParseConflictMode(name string) (types.ConflictMode, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
	case "", "ordinary":
		return types.Ordinary, nil
	case "skip_locked":
		return types.SkipLocked, nil
	default:
		return 0, fmt.Errorf("unknown for_update mode %q", name)
	}
}
