package types

import "fmt"

// CTE is one member of a WITH clause.
//
// DependsOn names other CTEs that the body references. Renderers emit CTEs
// in slice order and never consult it; callers that want dependency order
// must sort the slice themselves before attaching it.
type CTE struct {
	Name      string
	Body      Part
	Columns   []string
	DependsOn []string
	Recursive bool
}

func validateWith(with []CTE) error {
	seen := make(map[string]bool, len(with))
	for i := range with {
		cte := &with[i]
		if cte.Name == "" {
			return fmt.Errorf("CTE %d has no name", i)
		}
		if seen[cte.Name] {
			return fmt.Errorf("duplicate CTE name %q", cte.Name)
		}
		seen[cte.Name] = true
		if err := cte.Body.validate(); err != nil {
			return fmt.Errorf("CTE %q: %w", cte.Name, err)
		}
	}
	return nil
}
