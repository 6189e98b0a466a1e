package sqlrender

import (
	"fmt"

	"github.com/zoobzio/sqlrender/internal/render"
	"github.com/zoobzio/sqlrender/internal/types"
)

// OrderCTEs returns a copy of ctes sorted so every entry follows the
// entries named in its DependsOn. Entries with no ordering constraint
// between them keep their relative order. Unknown names and
// self-references are ignored; a dependency cycle is an InvalidQueryError.
//
// Renderers never call this. Use it before rendering when CTEs are
// collected out of order.
func OrderCTEs(ctes []CTE) ([]CTE, error) {
	index := make(map[string]int, len(ctes))
	for i := range ctes {
		index[ctes[i].Name] = i
	}

	ordered := make([]types.CTE, 0, len(ctes))
	emitted := make([]bool, len(ctes))

	for len(ordered) < len(ctes) {
		progressed := false
		for i := range ctes {
			if emitted[i] || !ready(ctes[i], index, emitted) {
				continue
			}
			ordered = append(ordered, ctes[i])
			emitted[i] = true
			progressed = true
			break
		}
		if !progressed {
			return nil, render.NewInvalidQueryError(
				fmt.Errorf("CTE dependency cycle involving %q", firstPending(ctes, emitted)))
		}
	}

	return ordered, nil
}

// ready reports whether every known dependency of cte has been emitted.
func ready(cte types.CTE, index map[string]int, emitted []bool) bool {
	for _, dep := range cte.DependsOn {
		if dep == cte.Name {
			continue
		}
		if i, ok := index[dep]; ok && !emitted[i] {
			return false
		}
	}
	return true
}

func firstPending(ctes []types.CTE, emitted []bool) string {
	for i := range ctes {
		if !emitted[i] {
			return ctes[i].Name
		}
	}
	return ""
}
