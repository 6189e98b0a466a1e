// Package dialect resolves dialect renderers by name.
//
// It is the lookup used by tooling that picks a dialect at runtime, such as
// the sqlrender command. Library callers that know their dialect can import
// the dialect package directly.
package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zoobzio/sqlrender/internal/render"
	"github.com/zoobzio/sqlrender/internal/types"
	"github.com/zoobzio/sqlrender/pkg/db2"
	"github.com/zoobzio/sqlrender/pkg/mariadb"
	"github.com/zoobzio/sqlrender/pkg/mssql"
	"github.com/zoobzio/sqlrender/pkg/mysql"
	"github.com/zoobzio/sqlrender/pkg/oracle"
	"github.com/zoobzio/sqlrender/pkg/postgres"
	"github.com/zoobzio/sqlrender/pkg/sqlite"
)

// ErrUnknownDialect is returned by Resolve for names it does not recognise.
var ErrUnknownDialect = errors.New("unknown dialect")

// ErrVersionNotSupported is returned when a version is given for a dialect
// whose capabilities do not vary by version.
var ErrVersionNotSupported = errors.New("dialect is not versioned")

// Renderer renders query models for one dialect.
type Renderer interface {
	Render(q *types.SelectQuery) (string, error)
	RenderUnion(q *types.UnionQuery) (string, error)
	Capabilities() render.Capabilities
}

type entry struct {
	latest    func() Renderer
	versioned func(v string) (Renderer, error)
}

var registry = map[string]entry{
	postgres.Name: {latest: func() Renderer { return postgres.New() }},
	sqlite.Name:   {latest: func() Renderer { return sqlite.New() }},
	mssql.Name:    {latest: func() Renderer { return mssql.New() }},
	db2.Name:      {latest: func() Renderer { return db2.New() }},
	mysql.Name: {
		latest:    func() Renderer { return mysql.New() },
		versioned: func(v string) (Renderer, error) {
			r, err := mysql.NewForVersion(v)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	},
	mariadb.Name: {
		latest:    func() Renderer { return mariadb.New() },
		versioned: func(v string) (Renderer, error) {
			r, err := mariadb.NewForVersion(v)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	},
	oracle.Name: {
		latest:    func() Renderer { return oracle.New() },
		versioned: func(v string) (Renderer, error) {
			r, err := oracle.NewForVersion(v)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	},
}

var aliases = map[string]string{
	"postgresql": postgres.Name,
	"pgsql":      postgres.Name,
	"sqlite3":    sqlite.Name,
	"sqlserver":  mssql.Name,
	"oci8":       oracle.Name,
	"ibm_db2":    db2.Name,
}

// Canonical maps a dialect name or alias to its canonical name.
func Canonical(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	if _, ok := registry[key]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
	return key, nil
}

// Resolve returns a renderer for the named dialect. An empty version selects
// the most capable server the dialect package knows about.
func Resolve(name, version string) (Renderer, error) {
	canonical, err := Canonical(name)
	if err != nil {
		return nil, err
	}

	e := registry[canonical]
	if version == "" {
		return e.latest(), nil
	}
	if e.versioned == nil {
		return nil, fmt.Errorf("%s: %w", canonical, ErrVersionNotSupported)
	}
	return e.versioned(version)
}

// Names returns the canonical dialect names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Versioned reports whether the named dialect accepts a server version.
func Versioned(name string) bool {
	canonical, err := Canonical(name)
	if err != nil {
		return false
	}
	return registry[canonical].versioned != nil
}
