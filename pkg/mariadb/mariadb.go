// Package mariadb provides the MariaDB dialect renderer for sqlrender.
package mariadb

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/zoobzio/sqlrender/internal/render"
	"github.com/zoobzio/sqlrender/internal/types"
	"github.com/zoobzio/sqlrender/pkg/mysql"
)

// Name is the dialect name reported in errors.
const Name = "mariadb"

// replicationPrefix is prepended to the version by MariaDB servers to keep
// old MySQL replicas happy.
const replicationPrefix = "5.5.5-"

var (
	mariadb102 = version.Must(version.NewVersion("10.2"))
	mariadb106 = version.Must(version.NewVersion("10.6"))
)

// Renderer implements the MariaDB dialect renderer.
type Renderer struct {
	caps render.Capabilities
}

// New creates a renderer for MariaDB 10.6 and later.
func New() *Renderer {
	return newRenderer(mariadb106)
}

// NewForVersion creates a renderer for the given server version. Both the
// plain form ("10.5.23") and the reported form ("5.5.5-10.5.23-MariaDB")
// are accepted.
func NewForVersion(v string) (*Renderer, error) {
	ver, err := version.NewVersion(strings.TrimPrefix(v, replicationPrefix))
	if err != nil {
		return nil, fmt.Errorf("mariadb: invalid server version %q: %w", v, err)
	}
	return newRenderer(ver), nil
}

func newRenderer(ver *version.Version) *Renderer {
	core := ver.Core()

	caps := render.Capabilities{
		Dialect:                Name,
		CommonTableExpressions: core.GreaterThanOrEqual(mariadb102),
		ForUpdate:              "FOR UPDATE",
		Limit:                  mysql.Limit,
	}
	if core.GreaterThanOrEqual(mariadb106) {
		caps.SkipLocked = "SKIP LOCKED"
	}
	return &Renderer{caps: caps}
}

// Render converts a SELECT model to MariaDB SQL.
func (r *Renderer) Render(q *types.SelectQuery) (string, error) {
	return render.Select(q, r.caps)
}

// RenderUnion converts a UNION model to MariaDB SQL.
func (r *Renderer) RenderUnion(q *types.UnionQuery) (string, error) {
	return render.Union(q, r.caps)
}

// Capabilities returns the SQL features supported by this MariaDB version.
func (r *Renderer) Capabilities() render.Capabilities {
	return r.caps
}
