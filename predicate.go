package sqlrender

import "strings"

// Logical connectives for composite predicates.
const (
	logicAnd = "AND"
	logicOr  = "OR"
)

// predicate is a WHERE or HAVING expression built from opaque fragments.
// A single fragment renders as-is; several are parenthesised and joined,
// so "(a) AND (b)" stays unambiguous when later combined with OR.
type predicate struct {
	logic string
	parts []string
}

func newPredicate(logic string, parts ...string) *predicate {
	p := &predicate{logic: logic}
	for _, part := range parts {
		if part != "" {
			p.parts = append(p.parts, part)
		}
	}
	if len(p.parts) == 0 {
		return nil
	}
	return p
}

// combine joins p with more fragments. Extending a predicate with its own
// connective flattens; a different connective nests the existing predicate.
func (p *predicate) combine(logic string, more ...string) *predicate {
	if p == nil {
		return newPredicate(logic, more...)
	}
	if p.logic == logic || len(p.parts) == 1 {
		parts := make([]string, 0, len(p.parts)+len(more))
		parts = append(parts, p.parts...)
		parts = append(parts, more...)
		return newPredicate(logic, parts...)
	}
	return newPredicate(logic, append([]string{p.String()}, more...)...)
}

func (p *predicate) String() string {
	if p == nil {
		return ""
	}
	if len(p.parts) == 1 {
		return p.parts[0]
	}
	return "(" + strings.Join(p.parts, ") "+p.logic+" (") + ")"
}
