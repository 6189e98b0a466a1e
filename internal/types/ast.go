package types

import (
	"errors"
	"fmt"
)

var (
	errEmptyRawPart    = errors.New("raw part has no SQL")
	errNilNestedPart   = errors.New("nested part has no query")
	errUnknownPartKind = errors.New("unknown part kind")
)

// ConflictMode selects how a locking read treats rows locked by others.
type ConflictMode int

const (
	Ordinary   ConflictMode = iota // Block until the lock is released
	SkipLocked                     // Leave locked rows out of the result
)

func (m ConflictMode) String() string {
	switch m {
	case Ordinary:
		return "ORDINARY"
	case SkipLocked:
		return "SKIP_LOCKED"
	default:
		return fmt.Sprintf("ConflictMode(%d)", int(m))
	}
}

// ForUpdate requests a row-locking read.
type ForUpdate struct {
	Mode ConflictMode
}

// SelectQuery is the structured form of one SELECT statement.
// Column, source and predicate text is opaque and emitted as given.
// Renderers treat a SelectQuery as read-only.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type SelectQuery struct {
	Distinct  bool
	Columns   []string
	From      []string
	Where     string // empty means no WHERE clause
	GroupBy   []string
	Having    string // empty means no HAVING clause
	OrderBy   []string
	Limit     Limit
	ForUpdate *ForUpdate
	With      []CTE
}

// Validate performs basic validation on the query.
func (q *SelectQuery) Validate() error {
	if q == nil {
		return fmt.Errorf("select query is nil")
	}
	if len(q.Columns) == 0 {
		return fmt.Errorf("SELECT requires at least one column")
	}
	if q.ForUpdate != nil && q.ForUpdate.Mode != Ordinary && q.ForUpdate.Mode != SkipLocked {
		return fmt.Errorf("unsupported conflict mode: %s", q.ForUpdate.Mode)
	}
	if err := q.Limit.validate(); err != nil {
		return err
	}
	return validateWith(q.With)
}

// UnionQuery is the structured form of a UNION of statements.
type UnionQuery struct {
	Distinct bool
	Parts    []Part
	OrderBy  []string
	Limit    Limit
}

// Validate performs basic validation on the union.
func (q *UnionQuery) Validate() error {
	if q == nil {
		return fmt.Errorf("union query is nil")
	}
	if len(q.Parts) == 0 {
		return fmt.Errorf("UNION requires at least one part")
	}
	for i, part := range q.Parts {
		if err := part.validate(); err != nil {
			return fmt.Errorf("union part %d: %w", i, err)
		}
	}
	return q.Limit.validate()
}
