package types

// PartKind discriminates the two forms a query part can take.
type PartKind int

const (
	PartRaw    PartKind = iota // Verbatim SQL text
	PartNested                 // Structured SELECT rendered recursively
)

func (k PartKind) String() string {
	switch k {
	case PartRaw:
		return "raw"
	case PartNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Part is a union branch or CTE body: either raw SQL or a nested SELECT.
// Construct it with RawPart or NestedPart; renderers switch on Kind.
type Part struct {
	Query *SelectQuery
	SQL   string
	Kind  PartKind
}

// RawPart wraps SQL text that is emitted verbatim.
func RawPart(sql string) Part {
	return Part{Kind: PartRaw, SQL: sql}
}

// NestedPart wraps a structured SELECT.
func NestedPart(q *SelectQuery) Part {
	return Part{Kind: PartNested, Query: q}
}

func (p Part) validate() error {
	switch p.Kind {
	case PartRaw:
		if p.SQL == "" {
			return errEmptyRawPart
		}
		return nil
	case PartNested:
		if p.Query == nil {
			return errNilNestedPart
		}
		return p.Query.Validate()
	default:
		return errUnknownPartKind
	}
}
