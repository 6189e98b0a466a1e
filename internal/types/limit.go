package types

import "fmt"

// Limit describes how many rows a query returns and how many it skips.
// The zero value means "no limit". Limit is immutable: the With* methods
// return modified copies.
type Limit struct {
	maxResults  *int
	firstResult int
}

// NoLimit returns a Limit that restricts nothing.
func NoLimit() Limit {
	return Limit{}
}

// NewLimit creates a Limit. A nil maxResults means "no maximum".
func NewLimit(maxResults *int, firstResult int) Limit {
	l := Limit{firstResult: firstResult}
	if maxResults != nil {
		n := *maxResults
		l.maxResults = &n
	}
	return l
}

// MaxResultsLimit creates a Limit with only a maximum row count.
func MaxResultsLimit(n int) Limit {
	return Limit{maxResults: &n}
}

// MaxResults returns the maximum row count and whether one is set.
func (l Limit) MaxResults() (int, bool) {
	if l.maxResults == nil {
		return 0, false
	}
	return *l.maxResults, true
}

// FirstResult returns the number of rows to skip.
func (l Limit) FirstResult() int {
	return l.firstResult
}

// IsDefined reports whether the limit restricts the result set at all.
func (l Limit) IsDefined() bool {
	return l.maxResults != nil || l.firstResult > 0
}

// WithMaxResults returns a copy with the maximum row count set.
func (l Limit) WithMaxResults(n int) Limit {
	l.maxResults = &n
	return l
}

// WithoutMaxResults returns a copy with the maximum row count cleared.
func (l Limit) WithoutMaxResults() Limit {
	l.maxResults = nil
	return l
}

// WithFirstResult returns a copy with the offset set.
func (l Limit) WithFirstResult(n int) Limit {
	l.firstResult = n
	return l
}

// maxResultsPtr returns a fresh pointer so callers cannot reach the
// Limit's own storage.
func (l Limit) maxResultsPtr() *int {
	if l.maxResults == nil {
		return nil
	}
	n := *l.maxResults
	return &n
}

// Values returns the limit in the form a limit rewriter consumes.
func (l Limit) Values() (maxResults *int, firstResult int) {
	return l.maxResultsPtr(), l.firstResult
}

func (l Limit) validate() error {
	if l.maxResults != nil && *l.maxResults < 0 {
		return fmt.Errorf("max results must not be negative, got %d", *l.maxResults)
	}
	if l.firstResult < 0 {
		return fmt.Errorf("first result must not be negative, got %d", l.firstResult)
	}
	return nil
}
