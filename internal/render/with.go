package render

import (
	"strings"

	"github.com/zoobzio/sqlrender/internal/types"
)

// renderWith renders the CTE list in the order given. DependsOn is not
// consulted.
func renderWith(with []types.CTE, caps Capabilities) (string, error) {
	entries := make([]string, 0, len(with))
	for i := range with {
		entry, err := renderCTE(&with[i], caps)
		if err != nil {
			return "", err
		}
		entries = append(entries, entry)
	}
	return strings.Join(entries, ", "), nil
}

func renderCTE(cte *types.CTE, caps Capabilities) (string, error) {
	body, err := renderPart(cte.Body, caps)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(cte.Name)
	if len(cte.Columns) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(cte.Columns, ", "))
		sb.WriteString(")")
	}
	sb.WriteString(" AS (")
	sb.WriteString(body)
	sb.WriteString(")")
	return sb.String(), nil
}

// hasRecursive reports whether any entry is recursive; one is enough to
// make the whole clause WITH RECURSIVE.
func hasRecursive(with []types.CTE) bool {
	for i := range with {
		if with[i].Recursive {
			return true
		}
	}
	return false
}
