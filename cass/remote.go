package cass

import (
	"sort"

	"github.com/gocql/gocql"
)

// schemaRow is one row of system_schema.columns.
type schemaRow struct {
	Table    string
	Column   string
	Type     string
	Order    string
	Kind     string
	Position int
}

// RemoteGetMatchingTables reads the layout of every table of keyspace
// named in tables with a single pass over system_schema.columns.
func RemoteGetMatchingTables(
	sess *gocql.Session,
	keyspace string,
	tables map[string]*Table,
) (map[string]*Table, error) {
	const q = `select 
			table_name,
			column_name,
			type,
			clustering_order,
			kind,
			position
		from system_schema.columns 
		where keyspace_name = ?`
	i := sess.Query(q, keyspace).Iter()
	var r schemaRow
	rows := make([]schemaRow, 0, 4*len(tables))
	for i.Scan(&r.Table, &r.Column, &r.Type, &r.Order, &r.Kind, &r.Position) {
		if _, ok := tables[r.Table]; ok {
			rows = append(rows, r)
		}
	}
	if err := i.Close(); err != nil {
		return nil, err
	}
	return groupSchemaRows(rows), nil
}

// groupSchemaRows builds one Table per table_name,
// primary key columns sorted by position.
func groupSchemaRows(rows []schemaRow) map[string]*Table {
	ret := make(map[string]*Table)
	for _, r := range rows {
		t := ret[r.Table]
		if t == nil {
			t = &Table{
				Name:       r.Table,
				Columns:    make(map[string]*TableColumn),
				PrimaryKey: new(PrimaryKey),
			}
			ret[r.Table] = t
		}
		t.Columns[r.Column] = &TableColumn{Name: r.Column, Type: r.Type}
		pk := t.PrimaryKey
		switch r.Kind {
		case "partition_key":
			pk.PartitionColumns = append(pk.PartitionColumns,
				PKPartitionColumn{Name: r.Column, Position: r.Position})
		case "clustering":
			pk.ClusteringColumns = append(pk.ClusteringColumns,
				PKClusteringColumn{Name: r.Column, Position: r.Position, Order: r.Order})
		}
	}
	for _, t := range ret {
		pc, cc := t.PrimaryKey.PartitionColumns, t.PrimaryKey.ClusteringColumns
		sort.Slice(pc, func(i, j int) bool { return pc[i].Position < pc[j].Position })
		sort.Slice(cc, func(i, j int) bool { return cc[i].Position < cc[j].Position })
	}
	return ret
}
