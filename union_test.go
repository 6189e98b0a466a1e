package sqlrender

import (
	"strings"
	"testing"

	"github.com/zoobzio/sqlrender/pkg/mssql"
	"github.com/zoobzio/sqlrender/pkg/postgres"
)

func TestUnion_Distinct(t *testing.T) {
	sql, err := Union(Raw("SELECT 1 AS field_one"), Raw("SELECT 2 AS field_one")).Render(postgres.New())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	assertSQL(t, "SELECT 1 AS field_one UNION SELECT 2 AS field_one", sql)
}

func TestUnion_All(t *testing.T) {
	sql, err := UnionAll(Raw("SELECT 1")).Add(Raw("SELECT 2")).OrderBy("x").Render(postgres.New())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	assertSQL(t, "SELECT 1 UNION ALL SELECT 2 ORDER BY x", sql)
}

func TestUnion_QueryParts(t *testing.T) {
	sql, err := Union().
		AddQuery(Select("id").From("for_update").Where("id = 1")).
		AddQuery(Select("id").From("for_update").Where("id = 2")).
		OrderBy("id", "desc").
		Render(postgres.New())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	assertSQL(t, "SELECT id FROM for_update WHERE id = 1 UNION SELECT id FROM for_update WHERE id = 2 ORDER BY id DESC", sql)
}

func TestUnion_LimitAndOffset(t *testing.T) {
	u := UnionAll(Raw("SELECT 1 AS field_one"), Raw("SELECT 2 AS field_one")).
		OrderBy("field_one").
		AddOrderBy("1", "asc").
		SetMaxResults(1).
		SetFirstResult(1)

	sql, err := u.Render(postgres.New())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	assertSQL(t, "SELECT 1 AS field_one UNION ALL SELECT 2 AS field_one ORDER BY field_one, 1 ASC LIMIT 1 OFFSET 1", sql)

	sql, err = u.Render(mssql.New())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	assertSQL(t, "SELECT 1 AS field_one UNION ALL SELECT 2 AS field_one ORDER BY field_one, 1 ASC OFFSET 1 ROWS FETCH NEXT 1 ROWS ONLY", sql)
}

func TestUnion_SinglePart(t *testing.T) {
	sql, err := Union(Raw("SELECT 1")).Render(postgres.New())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	assertSQL(t, "SELECT 1", sql)
}

func TestUnion_Errors(t *testing.T) {
	t.Run("no parts", func(t *testing.T) {
		_, err := Union().Build()
		if !IsInvalid(err) {
			t.Errorf("error = %v, want InvalidQueryError", err)
		}
	})

	t.Run("invalid query part", func(t *testing.T) {
		u := Union(Raw("SELECT 1")).AddQuery(Select()).Add(Raw("SELECT 3"))
		if u.GetError() == nil {
			t.Fatal("expected recorded error")
		}
		_, err := u.Build()
		if err == nil || !strings.Contains(err.Error(), "union part 1") {
			t.Errorf("error = %v, want union part 1 failure", err)
		}
	})

	t.Run("must render panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		UnionAll().MustRender(postgres.New())
	})
}
