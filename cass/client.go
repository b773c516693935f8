// Package cass is a row and column oriented client for a Cassandra keyspace.
//
// Client translates plain rows into mutations, column paths, column
// parents and slice predicates and forwards each call to a Stub as a
// single blocking request. A Client is not safe for concurrent use.
package cass

import (
	"time"

	"github.com/gocql/gocql"
	"github.com/kzaag/colfam/cmn"
	"github.com/kzaag/colfam/target"
)

const (
	DefaultCount    = 100
	DefaultRowCount = 100
)

var (
	// ANY is the closest CQL level to the old ZERO write level.
	DefaultWriteConsistency = gocql.Any
	DefaultReadConsistency  = gocql.One
)

type Client struct {
	keyspace string
	stub     Stub
	now      func() time.Time
}

// New opens a session to the target's servers and binds the client
// to the target's keyspace.
func New(t *target.Target, log *cmn.Logger) (*Client, error) {
	stub, err := Dial(t, log)
	if err != nil {
		return nil, err
	}
	c := NewWithStub(t.Keyspace, stub)
	log.Notify("cassandra library initialized %s", t.Address())
	return c, nil
}

// NewWithStub binds a client to keyspace over an existing stub.
func NewWithStub(keyspace string, stub Stub) *Client {
	return &Client{
		keyspace: keyspace,
		stub:     stub,
		now:      time.Now,
	}
}

func (c *Client) Keyspace() string {
	return c.keyspace
}

func (c *Client) Close() {
	c.stub.Close()
}

func (c *Client) timestamp() int64 {
	return c.now().UnixNano() / int64(time.Microsecond)
}

// Insert writes data to row key of columnFamily in one batch.
// Scalars become columns, Super values become super columns.
// Every column shares one timestamp, null values are stored as "".
// Column and sub-column names must not be empty.
func (c *Client) Insert(
	columnFamily, key string, data Row, cl gocql.Consistency,
) error {
	if columnFamily == "" {
		return ErrColumnFamilyRequired
	}

	ts := c.timestamp()
	columns := make([]ColumnOrSuperColumn, 0, len(data))

	for _, name := range sortedNames(data) {
		if name == "" {
			return ErrColumnNameRequired
		}
		val := data[name]
		if !val.IsSuper() {
			columns = append(columns, ColumnOrSuperColumn{
				Column: &Column{Name: name, Value: val.String(), Timestamp: ts},
			})
			continue
		}
		super := &SuperColumn{
			Name:    name,
			Columns: make([]Column, 0, len(val.super)),
		}
		for _, sub := range val.Columns() {
			if sub == "" {
				return ErrColumnNameRequired
			}
			subval := val.super[sub]
			if subval.IsSuper() {
				return ErrNestedSuperColumn
			}
			super.Columns = append(super.Columns,
				Column{Name: sub, Value: subval.String(), Timestamp: ts})
		}
		columns = append(columns, ColumnOrSuperColumn{SuperColumn: super})
	}

	mutation := Mutation{columnFamily: columns}
	return c.stub.BatchInsert(c.keyspace, key, mutation, cl)
}

// Delete removes one column, superColumnName may be empty.
// An empty columnName with a superColumnName removes the whole super column.
func (c *Client) Delete(
	columnFamily, key, columnName, superColumnName string, cl gocql.Consistency,
) error {
	var path ColumnPath
	var err error
	if columnName == "" && superColumnName != "" {
		path, err = BuildSuperColumnPath(columnFamily, superColumnName)
	} else {
		path, err = BuildColumnPath(columnFamily, columnName, superColumnName)
	}
	if err != nil {
		return err
	}
	return c.stub.Remove(c.keyspace, key, path, c.timestamp(), cl)
}

// FetchRow reads columns of one row named between start and finish.
func (c *Client) FetchRow(
	columnFamily, key, start, finish string,
	reversed bool, count int, cl gocql.Consistency,
) ([]ColumnOrSuperColumn, error) {
	parent, err := BuildColumnParent(columnFamily, "")
	if err != nil {
		return nil, err
	}
	predicate := BuildPredicate(start, finish, reversed, count)
	return c.stub.GetSlice(c.keyspace, key, parent, predicate, cl)
}

// FetchSuperCol reads sub-columns of one super column.
func (c *Client) FetchSuperCol(
	columnFamily, key, superColumnName string, cl gocql.Consistency,
) ([]ColumnOrSuperColumn, error) {
	if superColumnName == "" {
		return nil, ErrColumnNameRequired
	}
	parent, err := BuildColumnParent(columnFamily, superColumnName)
	if err != nil {
		return nil, err
	}
	return c.stub.GetSlice(c.keyspace, key, parent, DefaultPredicate(), cl)
}

// FetchRows reads the first DefaultCount columns of each of keys.
func (c *Client) FetchRows(
	columnFamily string, keys []string, cl gocql.Consistency,
) (map[string][]ColumnOrSuperColumn, error) {
	parent, err := BuildColumnParent(columnFamily, "")
	if err != nil {
		return nil, err
	}
	return c.stub.MultigetSlice(c.keyspace, keys, parent, DefaultPredicate(), cl)
}

// FetchRowsByRange reads up to rowCount rows with keys between startKey
// and endKey. reversed orders columns within each row.
func (c *Client) FetchRowsByRange(
	columnFamily, startKey, endKey string,
	rowCount int, reversed bool, cl gocql.Consistency,
) ([]KeySlice, error) {
	parent, err := BuildColumnParent(columnFamily, "")
	if err != nil {
		return nil, err
	}
	predicate := DefaultPredicate()
	predicate.Reversed = reversed
	return c.stub.GetRangeSlice(c.keyspace, parent, predicate, startKey, endKey, rowCount, cl)
}

func (c *Client) FetchAll(
	columnFamily string, rowCount int, reversed bool, cl gocql.Consistency,
) ([]KeySlice, error) {
	return c.FetchRowsByRange(columnFamily, "", "", rowCount, reversed, cl)
}

func (c *Client) FetchCol(
	columnFamily, key, columnName string, cl gocql.Consistency,
) (ColumnOrSuperColumn, error) {
	path, err := BuildColumnPath(columnFamily, columnName, "")
	if err != nil {
		return ColumnOrSuperColumn{}, err
	}
	return c.stub.Get(c.keyspace, key, path, cl)
}

func BuildColumnParent(columnFamily, superColumnName string) (ColumnParent, error) {
	if columnFamily == "" {
		return ColumnParent{}, ErrColumnFamilyRequired
	}
	return ColumnParent{
		ColumnFamily: columnFamily,
		SuperColumn:  superColumnName,
	}, nil
}

func BuildColumnPath(columnFamily, columnName, superColumnName string) (ColumnPath, error) {
	if columnFamily == "" {
		return ColumnPath{}, ErrColumnFamilyRequired
	}
	if columnName == "" {
		return ColumnPath{}, ErrColumnNameRequired
	}
	return ColumnPath{
		ColumnFamily: columnFamily,
		SuperColumn:  superColumnName,
		Column:       columnName,
	}, nil
}

// BuildSuperColumnPath addresses a whole super column.
func BuildSuperColumnPath(columnFamily, superColumnName string) (ColumnPath, error) {
	if columnFamily == "" {
		return ColumnPath{}, ErrColumnFamilyRequired
	}
	if superColumnName == "" {
		return ColumnPath{}, ErrColumnNameRequired
	}
	return ColumnPath{
		ColumnFamily: columnFamily,
		SuperColumn:  superColumnName,
	}, nil
}

func BuildPredicate(start, finish string, reversed bool, count int) SlicePredicate {
	return SlicePredicate{
		Start:    start,
		Finish:   finish,
		Reversed: reversed,
		Count:    count,
	}
}

// DefaultPredicate selects the first DefaultCount columns in ascending order.
func DefaultPredicate() SlicePredicate {
	return BuildPredicate("", "", false, DefaultCount)
}
