package render

import "fmt"

// Feature names reported by UnsupportedFeatureError.
const (
	FeatureWith       = "WITH"
	FeatureForUpdate  = "FOR UPDATE"
	FeatureSkipLocked = "SKIP LOCKED"
)

// UnsupportedFeatureError indicates a feature not supported by the dialect.
type UnsupportedFeatureError struct {
	Feature string
	Dialect string
	Hint    string
}

func (e UnsupportedFeatureError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s is not supported: %s", e.Dialect, e.Feature, e.Hint)
	}
	return fmt.Sprintf("%s: %s is not supported", e.Dialect, e.Feature)
}

// NewUnsupportedFeatureError creates a new unsupported feature error.
func NewUnsupportedFeatureError(dialect, feature string, hint ...string) error {
	err := UnsupportedFeatureError{Feature: feature, Dialect: dialect}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}

// InvalidQueryError indicates a query model that cannot be rendered
// regardless of dialect.
type InvalidQueryError struct {
	Err error
}

func (e InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query: %v", e.Err)
}

func (e InvalidQueryError) Unwrap() error {
	return e.Err
}

// NewInvalidQueryError wraps a validation failure.
func NewInvalidQueryError(err error) error {
	return InvalidQueryError{Err: err}
}
