package render

// LimitFunc rewrites a complete statement so it returns at most maxResults
// rows (nil means unbounded) after skipping firstResult rows.
type LimitFunc func(sql string, maxResults *int, firstResult int) string

// Capabilities describes the SQL features supported by a dialect.
// A Capabilities value is read-only once built; renderers only query it.
type Capabilities struct {
	Dialect                string    // Name used in error messages
	CommonTableExpressions bool      // WITH [RECURSIVE]
	ForUpdate              string    // Locking suffix, empty if unsupported
	SkipLocked             string    // Skip-locked suffix, empty if unsupported
	Limit                  LimitFunc // Limit/offset rewrite, nil for StandardLimit
}

// SupportsCommonTableExpressions reports whether WITH clauses may be emitted.
func (c Capabilities) SupportsCommonTableExpressions() bool {
	return c.CommonTableExpressions
}

// ForUpdateSuffix returns the row-locking clause, if the dialect has one.
func (c Capabilities) ForUpdateSuffix() (string, bool) {
	return c.ForUpdate, c.ForUpdate != ""
}

// SkipLockedSuffix returns the skip-locked clause, if the dialect has one.
func (c Capabilities) SkipLockedSuffix() (string, bool) {
	return c.SkipLocked, c.SkipLocked != ""
}

// RewriteForLimit applies the dialect's limit/offset syntax to sql.
func (c Capabilities) RewriteForLimit(sql string, maxResults *int, firstResult int) string {
	if c.Limit == nil {
		return StandardLimit(sql, maxResults, firstResult)
	}
	return c.Limit(sql, maxResults, firstResult)
}

func (c Capabilities) dialectName() string {
	if c.Dialect == "" {
		return "sql"
	}
	return c.Dialect
}
