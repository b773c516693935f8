package cass

import (
	"errors"
	"fmt"
)

var (
	ErrColumnFamilyRequired = errors.New("column family must be defined")
	ErrColumnNameRequired   = errors.New("column name must be defined")
	ErrNestedSuperColumn    = errors.New("super column values cannot contain super columns")
	ErrNotFound             = errors.New("column not found")
)

// Column is a single named value. Timestamp is in microseconds since the epoch.
type Column struct {
	Name      string `yaml:"name"`
	Value     string `yaml:"value"`
	Timestamp int64  `yaml:"timestamp"`
}

type SuperColumn struct {
	Name    string   `yaml:"name"`
	Columns []Column `yaml:"columns"`
}

// ColumnOrSuperColumn holds exactly one of Column and SuperColumn.
type ColumnOrSuperColumn struct {
	Column      *Column      `yaml:"column,omitempty"`
	SuperColumn *SuperColumn `yaml:"super_column,omitempty"`
}

func (c ColumnOrSuperColumn) Name() string {
	if c.SuperColumn != nil {
		return c.SuperColumn.Name
	}
	if c.Column != nil {
		return c.Column.Name
	}
	return ""
}

func (c ColumnOrSuperColumn) String() string {
	if c.SuperColumn != nil {
		return fmt.Sprintf("[super_column name=%s columns=%d]", c.SuperColumn.Name, len(c.SuperColumn.Columns))
	}
	if c.Column != nil {
		return fmt.Sprintf("[column name=%s value=%q timestamp=%d]", c.Column.Name, c.Column.Value, c.Column.Timestamp)
	}
	return "[empty]"
}

// Mutation maps column family name to the entries written to one row.
type Mutation map[string][]ColumnOrSuperColumn

// ColumnPath addresses one column, optionally inside a super column.
type ColumnPath struct {
	ColumnFamily string
	SuperColumn  string
	Column       string
}

func (p ColumnPath) String() string {
	if p.SuperColumn == "" {
		return fmt.Sprintf("%s[%s]", p.ColumnFamily, p.Column)
	}
	return fmt.Sprintf("%s[%s][%s]", p.ColumnFamily, p.SuperColumn, p.Column)
}

// ColumnParent addresses a column family, or a super column inside it.
type ColumnParent struct {
	ColumnFamily string
	SuperColumn  string
}

// SlicePredicate selects columns with names between Start and Finish.
// Empty bound means unbounded on that side.
type SlicePredicate struct {
	Start    string
	Finish   string
	Reversed bool
	Count    int
}

// KeySlice is one row returned by a key range read.
type KeySlice struct {
	Key     string                `yaml:"key"`
	Columns []ColumnOrSuperColumn `yaml:"columns"`
}
