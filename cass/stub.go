package cass

import "github.com/gocql/gocql"

// Stub is the remote procedure surface of the store.
// It is implemented over a gocql session and by fakes in tests.
// Errors returned by a Stub are handed to the caller as they are.
type Stub interface {
	BatchInsert(keyspace, key string, mutation Mutation, cl gocql.Consistency) error
	Remove(keyspace, key string, path ColumnPath, timestamp int64, cl gocql.Consistency) error
	Get(keyspace, key string, path ColumnPath, cl gocql.Consistency) (ColumnOrSuperColumn, error)
	GetSlice(keyspace, key string, parent ColumnParent, predicate SlicePredicate, cl gocql.Consistency) ([]ColumnOrSuperColumn, error)
	MultigetSlice(keyspace string, keys []string, parent ColumnParent, predicate SlicePredicate, cl gocql.Consistency) (map[string][]ColumnOrSuperColumn, error)
	GetRangeSlice(keyspace string, parent ColumnParent, predicate SlicePredicate, startKey, finishKey string, rowCount int, cl gocql.Consistency) ([]KeySlice, error)
	Close()
}
