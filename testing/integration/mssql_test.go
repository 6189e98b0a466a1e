package integration

import (
	"context"
	"testing"

	"github.com/zoobzio/sqlrender"
	"github.com/zoobzio/sqlrender/pkg/mssql"
)

func setupMSSQLPosts(ctx context.Context, t *testing.T, c *SQLContainer) {
	t.Helper()
	c.Exec(ctx, t, `IF OBJECT_ID('posts', 'U') IS NOT NULL DROP TABLE posts`)
	c.Exec(ctx, t, `CREATE TABLE posts (id INT PRIMARY KEY, author NVARCHAR(32) NOT NULL, views INT NOT NULL)`)
	c.Exec(ctx, t, `INSERT INTO posts (id, author, views) VALUES
		(1, 'alice', 10), (2, 'bob', 40), (3, 'alice', 30), (4, 'carol', 20)`)
}

func TestMSSQL_OffsetFetch(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	c := getMSSQLContainer(t)
	setupMSSQLPosts(ctx, t, c)

	tests := []struct {
		name     string
		builder  *sqlrender.Builder
		expected []string
	}{
		{
			name:     "explicit order",
			builder:  sqlrender.Select("id").From("posts").OrderBy("views", "DESC").SetMaxResults(2).SetFirstResult(1),
			expected: []string{"3", "4"},
		},
		{
			name:     "offset only",
			builder:  sqlrender.Select("id").From("posts").OrderBy("id").SetFirstResult(3),
			expected: []string{"4"},
		},
		{
			name:     "synthesized order",
			builder:  sqlrender.Select("COUNT(*)").From("posts").SetMaxResults(1),
			expected: []string{"4"},
		},
		{
			name:     "distinct orders by first column",
			builder:  sqlrender.Select("author").Distinct().From("posts").SetMaxResults(2),
			expected: []string{"alice", "bob"},
		},
		{
			name:     "order by inside subquery only",
			builder:  sqlrender.Select("COUNT(*)").From("(SELECT TOP 10 id FROM posts ORDER BY id DESC)", "recent").SetMaxResults(1),
			expected: []string{"4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := tt.builder.MustRender(mssql.New())
			assertValues(t, tt.expected, c.Column(ctx, t, query))
		})
	}
}

func TestMSSQL_CTE(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	c := getMSSQLContainer(t)
	setupMSSQLPosts(ctx, t, c)

	query, err := sqlrender.Select("author").
		WithQuery("popular", sqlrender.Select("author").From("posts").Where("views >= 30")).
		From("popular").
		OrderBy("author").
		SetMaxResults(5).
		Render(mssql.New())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	assertValues(t, []string{"alice", "bob"}, c.Column(ctx, t, query))
}

func TestMSSQL_Union(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	c := getMSSQLContainer(t)
	setupMSSQLPosts(ctx, t, c)

	query, err := sqlrender.UnionAll(sqlrender.Raw("SELECT 'zed' AS author")).
		AddQuery(sqlrender.Select("author").From("posts").Where("views >= 30")).
		OrderBy("author").
		SetMaxResults(2).
		Render(mssql.New())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	assertValues(t, []string{"alice", "bob"}, c.Column(ctx, t, query))
}

func TestMSSQL_ForUpdateRejected(t *testing.T) {
	_, err := sqlrender.Select("id").From("posts").ForUpdate().Render(mssql.New())
	if !sqlrender.IsUnsupported(err) {
		t.Fatalf("error = %v, want UnsupportedFeatureError", err)
	}
}
