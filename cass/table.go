package cass

type TableColumn struct {
	Name string
	Type string
}

type PKClusteringColumn struct {
	Name     string
	Order    string
	Position int
}

type PKPartitionColumn struct {
	Name     string
	Position int
}

type PrimaryKey struct {
	PartitionColumns  []PKPartitionColumn
	ClusteringColumns []PKClusteringColumn
}

type Table struct {
	Name       string
	Columns    map[string]*TableColumn
	PrimaryKey *PrimaryKey
}

// ColumnFamilyTable is the table layout backing one column family.
func ColumnFamilyTable(columnFamily string) *Table {
	return &Table{
		Name: columnFamily,
		Columns: map[string]*TableColumn{
			ColKey:     {Name: ColKey, Type: "text"},
			ColName:    {Name: ColName, Type: "text"},
			ColSubName: {Name: ColSubName, Type: "text"},
			ColValue:   {Name: ColValue, Type: "blob"},
		},
		PrimaryKey: &PrimaryKey{
			PartitionColumns: []PKPartitionColumn{
				{Name: ColKey, Position: 0},
			},
			ClusteringColumns: []PKClusteringColumn{
				{Name: ColName, Order: "asc", Position: 0},
				{Name: ColSubName, Order: "asc", Position: 1},
			},
		},
	}
}
