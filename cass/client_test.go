package cass

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/gocql/gocql"
)

type call struct {
	Op        string
	Keyspace  string
	Key       string
	Keys      []string
	Mutation  Mutation
	Path      ColumnPath
	Parent    ColumnParent
	Predicate SlicePredicate
	StartKey  string
	FinishKey string
	RowCount  int
	Timestamp int64
	CL        gocql.Consistency
}

type fakeStub struct {
	calls  []call
	err    error
	col    ColumnOrSuperColumn
	slice  []ColumnOrSuperColumn
	multi  map[string][]ColumnOrSuperColumn
	ranged []KeySlice
	closed bool
}

func (f *fakeStub) BatchInsert(keyspace, key string, mutation Mutation, cl gocql.Consistency) error {
	f.calls = append(f.calls, call{Op: "batch_insert", Keyspace: keyspace, Key: key, Mutation: mutation, CL: cl})
	return f.err
}

func (f *fakeStub) Remove(keyspace, key string, path ColumnPath, timestamp int64, cl gocql.Consistency) error {
	f.calls = append(f.calls, call{Op: "remove", Keyspace: keyspace, Key: key, Path: path, Timestamp: timestamp, CL: cl})
	return f.err
}

func (f *fakeStub) Get(keyspace, key string, path ColumnPath, cl gocql.Consistency) (ColumnOrSuperColumn, error) {
	f.calls = append(f.calls, call{Op: "get", Keyspace: keyspace, Key: key, Path: path, CL: cl})
	return f.col, f.err
}

func (f *fakeStub) GetSlice(keyspace, key string, parent ColumnParent, predicate SlicePredicate, cl gocql.Consistency) ([]ColumnOrSuperColumn, error) {
	f.calls = append(f.calls, call{Op: "get_slice", Keyspace: keyspace, Key: key, Parent: parent, Predicate: predicate, CL: cl})
	return f.slice, f.err
}

func (f *fakeStub) MultigetSlice(keyspace string, keys []string, parent ColumnParent, predicate SlicePredicate, cl gocql.Consistency) (map[string][]ColumnOrSuperColumn, error) {
	f.calls = append(f.calls, call{Op: "multiget_slice", Keyspace: keyspace, Keys: keys, Parent: parent, Predicate: predicate, CL: cl})
	return f.multi, f.err
}

func (f *fakeStub) GetRangeSlice(keyspace string, parent ColumnParent, predicate SlicePredicate, startKey, finishKey string, rowCount int, cl gocql.Consistency) ([]KeySlice, error) {
	f.calls = append(f.calls, call{
		Op: "get_range_slice", Keyspace: keyspace, Parent: parent, Predicate: predicate,
		StartKey: startKey, FinishKey: finishKey, RowCount: rowCount, CL: cl,
	})
	return f.ranged, f.err
}

func (f *fakeStub) Close() {
	f.closed = true
}

var fixedTime = time.Date(2010, 4, 1, 12, 30, 15, 123456789, time.UTC)

func newTestClient() (*Client, *fakeStub) {
	stub := &fakeStub{}
	c := NewWithStub("Keyspace1", stub)
	c.now = func() time.Time { return fixedTime }
	return c, stub
}

func TestBuildColumnPath(t *testing.T) {
	tests := []struct {
		Name         string
		ColumnFamily string
		Column       string
		Super        string
		Expected     ColumnPath
		Err          error
	}{
		{
			Name:         "column",
			ColumnFamily: "Standard1",
			Column:       "name",
			Expected:     ColumnPath{ColumnFamily: "Standard1", Column: "name"},
		},
		{
			Name:         "sub-column",
			ColumnFamily: "Super1",
			Column:       "city",
			Super:        "address",
			Expected:     ColumnPath{ColumnFamily: "Super1", SuperColumn: "address", Column: "city"},
		},
		{Name: "no column family", Column: "name", Err: ErrColumnFamilyRequired},
		{Name: "no column", ColumnFamily: "Standard1", Err: ErrColumnNameRequired},
		{Name: "nothing", Err: ErrColumnFamilyRequired},
	}

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			p, err := BuildColumnPath(tc.ColumnFamily, tc.Column, tc.Super)
			if !errors.Is(err, tc.Err) {
				t.Fatalf("expected error %v, got %v", tc.Err, err)
			}
			if p != tc.Expected {
				t.Fatalf("expected %+v, got %+v", tc.Expected, p)
			}
		})
	}
}

func TestBuildColumnParent(t *testing.T) {
	p, err := BuildColumnParent("Super1", "address")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != (ColumnParent{ColumnFamily: "Super1", SuperColumn: "address"}) {
		t.Fatalf("unexpected parent %+v", p)
	}

	if _, err = BuildColumnParent("", "address"); err != ErrColumnFamilyRequired {
		t.Fatalf("expected ErrColumnFamilyRequired, got %v", err)
	}
}

func TestDefaultPredicate(t *testing.T) {
	p := DefaultPredicate()
	expected := SlicePredicate{Start: "", Finish: "", Reversed: false, Count: 100}
	if p != expected {
		t.Fatalf("expected %+v, got %+v", expected, p)
	}
}

func TestInsert(t *testing.T) {
	c, stub := newTestClient()
	ts := fixedTime.UnixNano() / 1000

	err := c.Insert("Super1", "jsmith", Row{
		"a": Str("x"),
		"b": Super(map[string]Value{"c": Str("y")}),
	}, gocql.Quorum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stub.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(stub.calls))
	}
	got := stub.calls[0]
	if got.Op != "batch_insert" || got.Keyspace != "Keyspace1" || got.Key != "jsmith" || got.CL != gocql.Quorum {
		t.Fatalf("unexpected call %+v", got)
	}

	expected := Mutation{
		"Super1": {
			{Column: &Column{Name: "a", Value: "x", Timestamp: ts}},
			{SuperColumn: &SuperColumn{Name: "b", Columns: []Column{{Name: "c", Value: "y", Timestamp: ts}}}},
		},
	}
	if !reflect.DeepEqual(got.Mutation, expected) {
		t.Fatalf("unexpected mutation %v", got.Mutation)
	}
}

func TestInsertSharesTimestamp(t *testing.T) {
	stub := &fakeStub{}
	c := NewWithStub("Keyspace1", stub)
	ticks := 0
	c.now = func() time.Time {
		ticks++
		return fixedTime.Add(time.Duration(ticks) * time.Second)
	}

	err := c.Insert("Standard1", "k", Row{
		"a": Str("1"),
		"b": Str("2"),
		"c": Super(map[string]Value{"d": Str("3"), "e": Str("4")}),
	}, DefaultWriteConsistency)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := stub.calls[0].Mutation["Standard1"]
	ts := entries[0].Column.Timestamp
	if entries[1].Column.Timestamp != ts {
		t.Fatalf("columns have different timestamps")
	}
	for _, sub := range entries[2].SuperColumn.Columns {
		if sub.Timestamp != ts {
			t.Fatalf("sub-column %s has timestamp %d, expected %d", sub.Name, sub.Timestamp, ts)
		}
	}
	if ticks != 1 {
		t.Fatalf("expected clock to be read once, read %d times", ticks)
	}
}

func TestInsertNull(t *testing.T) {
	c, stub := newTestClient()

	err := c.Insert("Standard1", "k", Row{
		"a": Null(),
		"b": Super(map[string]Value{"c": {}}),
	}, DefaultWriteConsistency)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := stub.calls[0].Mutation["Standard1"]
	if entries[0].Column == nil || entries[0].Column.Value != "" {
		t.Fatalf("expected empty column value, got %v", entries[0])
	}
	if v := entries[1].SuperColumn.Columns[0].Value; v != "" {
		t.Fatalf("expected empty sub-column value, got %q", v)
	}
}

func TestInsertValidation(t *testing.T) {
	tests := []struct {
		Name         string
		ColumnFamily string
		Data         Row
		Err          error
	}{
		{
			Name: "no column family",
			Data: Row{"a": Str("x")},
			Err:  ErrColumnFamilyRequired,
		},
		{
			Name:         "nested super column",
			ColumnFamily: "Super1",
			Data: Row{"a": Super(map[string]Value{
				"b": Super(map[string]Value{"c": Str("x")}),
			})},
			Err: ErrNestedSuperColumn,
		},
		{
			Name:         "empty column name",
			ColumnFamily: "Standard1",
			Data:         Row{"": Str("x"), "a": Str("y")},
			Err:          ErrColumnNameRequired,
		},
		{
			Name:         "empty sub-column name",
			ColumnFamily: "Super1",
			Data:         Row{"b": Super(map[string]Value{"": Str("y")})},
			Err:          ErrColumnNameRequired,
		},
	}

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			c, stub := newTestClient()
			if err := c.Insert(tc.ColumnFamily, "k", tc.Data, DefaultWriteConsistency); err != tc.Err {
				t.Fatalf("expected %v, got %v", tc.Err, err)
			}
			if len(stub.calls) != 0 {
				t.Fatalf("expected no rpc, got %v", stub.calls)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	c, stub := newTestClient()

	if err := c.Delete("Super1", "jsmith", "city", "address", gocql.One); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := stub.calls[0]
	if got.Op != "remove" {
		t.Fatalf("expected remove, got %s", got.Op)
	}
	expected := ColumnPath{ColumnFamily: "Super1", SuperColumn: "address", Column: "city"}
	if got.Path != expected {
		t.Fatalf("expected path %+v, got %+v", expected, got.Path)
	}
	if got.Timestamp != fixedTime.UnixNano()/1000 {
		t.Fatalf("unexpected timestamp %d", got.Timestamp)
	}
}

func TestDeleteSuperColumn(t *testing.T) {
	c, stub := newTestClient()

	if err := c.Delete("Super1", "jsmith", "", "address", gocql.One); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := ColumnPath{ColumnFamily: "Super1", SuperColumn: "address"}
	if got := stub.calls[0].Path; got != expected {
		t.Fatalf("expected path %+v, got %+v", expected, got)
	}

	tests := []struct {
		Name   string
		CF     string
		Column string
		Super  string
		Err    error
	}{
		{"no column family", "", "", "address", ErrColumnFamilyRequired},
		{"no column or super column", "Super1", "", "", ErrColumnNameRequired},
	}
	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			c, stub := newTestClient()
			if err := c.Delete(tc.CF, "jsmith", tc.Column, tc.Super, gocql.One); err != tc.Err {
				t.Fatalf("expected %v, got %v", tc.Err, err)
			}
			if len(stub.calls) != 0 {
				t.Fatalf("expected no RPC, got %d", len(stub.calls))
			}
		})
	}
}

func TestFetchRow(t *testing.T) {
	c, stub := newTestClient()
	stub.slice = []ColumnOrSuperColumn{{Column: &Column{Name: "a", Value: "x"}}}

	cols, err := c.FetchRow("Standard1", "k", "a", "m", true, 10, gocql.One)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cols, stub.slice) {
		t.Fatalf("expected response returned unmodified, got %v", cols)
	}

	got := stub.calls[0]
	if got.Op != "get_slice" || got.Key != "k" {
		t.Fatalf("unexpected call %+v", got)
	}
	if got.Parent != (ColumnParent{ColumnFamily: "Standard1"}) {
		t.Fatalf("unexpected parent %+v", got.Parent)
	}
	expected := SlicePredicate{Start: "a", Finish: "m", Reversed: true, Count: 10}
	if got.Predicate != expected {
		t.Fatalf("expected predicate %+v, got %+v", expected, got.Predicate)
	}
}

func TestFetchSuperCol(t *testing.T) {
	c, stub := newTestClient()

	if _, err := c.FetchSuperCol("Super1", "k", "address", gocql.One); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := stub.calls[0]
	if got.Parent != (ColumnParent{ColumnFamily: "Super1", SuperColumn: "address"}) {
		t.Fatalf("unexpected parent %+v", got.Parent)
	}
	if got.Predicate != DefaultPredicate() {
		t.Fatalf("unexpected predicate %+v", got.Predicate)
	}

	if _, err := c.FetchSuperCol("Super1", "k", "", gocql.One); err != ErrColumnNameRequired {
		t.Fatalf("expected ErrColumnNameRequired, got %v", err)
	}
}

func TestFetchRows(t *testing.T) {
	c, stub := newTestClient()
	stub.multi = map[string][]ColumnOrSuperColumn{"a": nil, "b": nil}

	rows, err := c.FetchRows("Standard1", []string{"a", "b"}, gocql.One)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	got := stub.calls[0]
	if got.Op != "multiget_slice" || !reflect.DeepEqual(got.Keys, []string{"a", "b"}) {
		t.Fatalf("unexpected call %+v", got)
	}
	if got.Predicate != DefaultPredicate() {
		t.Fatalf("unexpected predicate %+v", got.Predicate)
	}
}

func TestFetchAllIsFullRange(t *testing.T) {
	c, stub := newTestClient()

	if _, err := c.FetchAll("Standard1", 50, false, gocql.One); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.FetchRowsByRange("Standard1", "", "", 50, false, gocql.One); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stub.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(stub.calls))
	}
	if !reflect.DeepEqual(stub.calls[0], stub.calls[1]) {
		t.Fatalf("FetchAll %+v differs from FetchRowsByRange %+v", stub.calls[0], stub.calls[1])
	}
	if stub.calls[0].RowCount != 50 || stub.calls[0].Predicate != DefaultPredicate() {
		t.Fatalf("unexpected call %+v", stub.calls[0])
	}
}

func TestFetchRowsByRangeReversed(t *testing.T) {
	c, stub := newTestClient()

	if _, err := c.FetchRowsByRange("Standard1", "a", "z", 5, true, gocql.One); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := stub.calls[0]
	if got.StartKey != "a" || got.FinishKey != "z" || got.RowCount != 5 {
		t.Fatalf("unexpected call %+v", got)
	}
	if !got.Predicate.Reversed || got.Predicate.Count != DefaultCount {
		t.Fatalf("unexpected predicate %+v", got.Predicate)
	}
}

func TestFetchCol(t *testing.T) {
	c, stub := newTestClient()
	stub.col = ColumnOrSuperColumn{Column: &Column{Name: "name", Value: "John"}}

	col, err := c.FetchCol("Standard1", "jsmith", "name", gocql.One)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.Column.Value != "John" {
		t.Fatalf("unexpected column %v", col)
	}
	if stub.calls[0].Path != (ColumnPath{ColumnFamily: "Standard1", Column: "name"}) {
		t.Fatalf("unexpected path %+v", stub.calls[0].Path)
	}
}

func TestValidationBeforeRPC(t *testing.T) {
	c, stub := newTestClient()

	ops := map[string]func() error{
		"delete no column family": func() error { return c.Delete("", "k", "a", "", gocql.One) },
		"delete no column":        func() error { return c.Delete("Standard1", "k", "", "", gocql.One) },
		"fetch row":               func() error { _, err := c.FetchRow("", "k", "", "", false, 1, gocql.One); return err },
		"fetch rows":              func() error { _, err := c.FetchRows("", []string{"k"}, gocql.One); return err },
		"fetch range":             func() error { _, err := c.FetchRowsByRange("", "", "", 1, false, gocql.One); return err },
		"fetch all":               func() error { _, err := c.FetchAll("", 1, false, gocql.One); return err },
		"fetch col":               func() error { _, err := c.FetchCol("Standard1", "k", "", gocql.One); return err },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op()
			if err != ErrColumnFamilyRequired && err != ErrColumnNameRequired {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if len(stub.calls) != 0 {
		t.Fatalf("expected no rpc, got %v", stub.calls)
	}
}

func TestStubErrorsPropagate(t *testing.T) {
	c, stub := newTestClient()
	stub.err = errors.New("connection refused")

	if err := c.Insert("Standard1", "k", Row{"a": Str("x")}, gocql.One); err != stub.err {
		t.Fatalf("expected stub error, got %v", err)
	}
	if err := c.Delete("Standard1", "k", "a", "", gocql.One); err != stub.err {
		t.Fatalf("expected stub error, got %v", err)
	}
	if _, err := c.FetchCol("Standard1", "k", "a", gocql.One); err != stub.err {
		t.Fatalf("expected stub error, got %v", err)
	}
	if _, err := c.FetchAll("Standard1", 1, false, gocql.One); err != stub.err {
		t.Fatalf("expected stub error, got %v", err)
	}
}

func TestClose(t *testing.T) {
	c, stub := newTestClient()
	c.Close()
	if !stub.closed {
		t.Fatalf("expected stub to be closed")
	}
	if c.Keyspace() != "Keyspace1" {
		t.Fatalf("unexpected keyspace %s", c.Keyspace())
	}
}
