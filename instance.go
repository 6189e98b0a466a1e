package sqlrender

import (
	"fmt"
	"sort"

	"github.com/zoobzio/dbml"
)

// Schema validates builder input against a DBML schema.
type Schema struct {
	project *dbml.Project
	// table -> column -> definition
	tables map[string]map[string]*dbml.Column
}

// NewFromDBML creates a Schema from a DBML project.
func NewFromDBML(project *dbml.Project) (*Schema, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	s := &Schema{
		project: project,
		tables:  make(map[string]map[string]*dbml.Column),
	}
	for _, table := range project.Tables {
		columns := make(map[string]*dbml.Column, len(table.Columns))
		for _, col := range table.Columns {
			columns[col.Name] = col
		}
		s.tables[table.Name] = columns
	}

	return s, nil
}

// Project returns the DBML project the schema was built from.
func (s *Schema) Project() *dbml.Project {
	return s.project
}

// Select creates a SELECT builder whose FROM sources must be tables in the
// schema or CTEs already added to the builder.
func (s *Schema) Select(columns ...string) *Builder {
	b := Select(columns...)
	b.schema = s
	return b
}

// Tables returns the table names in sorted order.
func (s *Schema) Tables() []string {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasTable reports whether the schema defines the table.
func (s *Schema) HasTable(name string) bool {
	_, ok := s.tables[name]
	return ok
}

// TryColumn returns the qualified reference "table.column", or an error if
// either is missing from the schema.
func (s *Schema) TryColumn(table, column string) (string, error) {
	if err := s.validateTable(table); err != nil {
		return "", err
	}
	if _, ok := s.tables[table][column]; !ok {
		return "", fmt.Errorf("column '%s' not found in table '%s'", column, table)
	}
	return table + "." + column, nil
}

// Column returns the qualified reference "table.column" or panics if either
// is missing from the schema.
func (s *Schema) Column(table, column string) string {
	ref, err := s.TryColumn(table, column)
	if err != nil {
		panic(err)
	}
	return ref
}

func (s *Schema) validateTable(name string) error {
	if _, ok := s.tables[name]; !ok {
		return fmt.Errorf("table '%s' not found in schema", name)
	}
	return nil
}
