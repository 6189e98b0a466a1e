package render

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	withKeyword   = regexp.MustCompile(`(?i)^WITH\b`)
	selectKeyword = regexp.MustCompile(`(?i)^SELECT\b`)
)

// StandardLimit appends LIMIT and OFFSET as SQL:2008-era engines such as
// PostgreSQL accept them. An offset without a maximum emits OFFSET alone.
func StandardLimit(sql string, maxResults *int, firstResult int) string {
	if maxResults != nil {
		sql += " LIMIT " + strconv.Itoa(*maxResults)
	}
	if firstResult > 0 {
		sql += " OFFSET " + strconv.Itoa(firstResult)
	}
	return sql
}

// OffsetFetch appends OFFSET m ROWS and, when a maximum is set,
// FETCH NEXT n ROWS ONLY. OFFSET is always emitted because engines like
// SQL Server reject FETCH without it.
func OffsetFetch(sql string, maxResults *int, firstResult int) string {
	sql += " OFFSET " + strconv.Itoa(firstResult) + " ROWS"
	if maxResults != nil {
		sql += " FETCH NEXT " + strconv.Itoa(*maxResults) + " ROWS ONLY"
	}
	return sql
}

// MainStatement returns sql without its leading WITH list, starting at the
// first SELECT outside parentheses and string literals. Leading whitespace
// is dropped. A WITH list not followed by a SELECT yields "".
func MainStatement(sql string) string {
	sql = strings.TrimLeft(sql, " \t\r\n")
	if !withKeyword.MatchString(sql) {
		return sql
	}

	depth := 0
	quoted := false
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case quoted:
			if c == '\'' {
				quoted = false
			}
		case c == '\'':
			quoted = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && !isWordByte(sql, i-1) && selectKeyword.MatchString(sql[i:]):
			return sql[i:]
		}
	}
	return ""
}

func isWordByte(s string, i int) bool {
	if i < 0 {
		return false
	}
	c := s[i]
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
