package cass

// cell is one stored (column1, column2) pair.
type cell struct {
	Name      string
	SubName   string
	Value     string
	Timestamp int64
}

/*
folder turns cells, in clustering order, into slice entries.
Under a super column parent every cell is a column named by SubName,
otherwise cells with SubName == "" are columns and
consecutive cells sharing Name form one super column.
Count limits top level entries, Count <= 0 means no limit.
*/
type folder struct {
	super bool
	count int
	out   []ColumnOrSuperColumn
}

func newFolder(parent ColumnParent, count int) *folder {
	return &folder{
		super: parent.SuperColumn != "",
		count: count,
		out:   make([]ColumnOrSuperColumn, 0),
	}
}

func (f *folder) full() bool {
	return f.count > 0 && len(f.out) >= f.count
}

// add returns false once the cell didnt fit and scanning may stop.
func (f *folder) add(c cell) bool {
	if f.super {
		if f.full() {
			return false
		}
		f.out = append(f.out, ColumnOrSuperColumn{
			Column: &Column{Name: c.SubName, Value: c.Value, Timestamp: c.Timestamp},
		})
		return true
	}

	if c.SubName == "" {
		if f.full() {
			return false
		}
		f.out = append(f.out, ColumnOrSuperColumn{
			Column: &Column{Name: c.Name, Value: c.Value, Timestamp: c.Timestamp},
		})
		return true
	}

	sub := Column{Name: c.SubName, Value: c.Value, Timestamp: c.Timestamp}
	if n := len(f.out); n > 0 {
		last := f.out[n-1].SuperColumn
		if last != nil && last.Name == c.Name {
			last.Columns = append(last.Columns, sub)
			return true
		}
	}
	if f.full() {
		return false
	}
	f.out = append(f.out, ColumnOrSuperColumn{
		SuperColumn: &SuperColumn{Name: c.Name, Columns: []Column{sub}},
	})
	return true
}

func foldCells(parent ColumnParent, count int, cells []cell) []ColumnOrSuperColumn {
	f := newFolder(parent, count)
	for _, c := range cells {
		if !f.add(c) {
			break
		}
	}
	return f.out
}
