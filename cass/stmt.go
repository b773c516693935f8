package cass

import (
	"fmt"
	"sort"
	"strings"
)

/*
	every column family is stored as one table:

	create table "ks"."cf" (
		key text,
		column1 text,
		column2 text,
		value blob,
		primary key((key),column1,column2)
	);

	plain column: column1 = name, column2 = ''
	super column: column1 = super column name, column2 = sub-column name
*/

const (
	ColKey     = "key"
	ColName    = "column1"
	ColSubName = "column2"
	ColValue   = "value"
)

type statement struct {
	Stmt string
	Args []interface{}
}

func QuoteIdent(s string) string {
	return `"` + strings.Replace(s, `"`, `""`, -1) + `"`
}

func TableName(keyspace, columnFamily string) string {
	return QuoteIdent(keyspace) + "." + QuoteIdent(columnFamily)
}

func StmtInsertColumn(keyspace, columnFamily string) string {
	return fmt.Sprintf(
		"insert into %s (%s, %s, %s, %s) values (?, ?, ?, ?) using timestamp ?",
		TableName(keyspace, columnFamily),
		ColKey, ColName, ColSubName, ColValue)
}

func StmtRemoveColumn(keyspace, columnFamily string) string {
	return fmt.Sprintf(
		"delete from %s using timestamp ? where %s = ? and %s = ? and %s = ?",
		TableName(keyspace, columnFamily),
		ColKey, ColName, ColSubName)
}

// StmtRemoveSuperColumn deletes every sub-column of one super column.
func StmtRemoveSuperColumn(keyspace, columnFamily string) string {
	return fmt.Sprintf(
		"delete from %s using timestamp ? where %s = ? and %s = ?",
		TableName(keyspace, columnFamily),
		ColKey, ColName)
}

func stmtSelect(keyspace, columnFamily string) string {
	return fmt.Sprintf(
		"select %s, %s, %s, writetime(%s) from %s where %s = ?",
		ColName, ColSubName, ColValue, ColValue,
		TableName(keyspace, columnFamily),
		ColKey)
}

// batchStatements flattens mutation into one insert per stored cell.
// Column families are visited in name order.
func batchStatements(keyspace, key string, mutation Mutation) []statement {
	cfs := make([]string, 0, len(mutation))
	for cf := range mutation {
		cfs = append(cfs, cf)
	}
	sort.Strings(cfs)

	ret := make([]statement, 0)
	for _, cf := range cfs {
		stmt := StmtInsertColumn(keyspace, cf)
		for _, e := range mutation[cf] {
			if e.SuperColumn != nil {
				for _, c := range e.SuperColumn.Columns {
					ret = append(ret, statement{
						Stmt: stmt,
						Args: []interface{}{key, e.SuperColumn.Name, c.Name, c.Value, c.Timestamp},
					})
				}
				continue
			}
			if e.Column != nil {
				c := e.Column
				ret = append(ret, statement{
					Stmt: stmt,
					Args: []interface{}{key, c.Name, "", c.Value, c.Timestamp},
				})
			}
		}
	}
	return ret
}

func removeStatement(keyspace, key string, path ColumnPath, timestamp int64) statement {
	if path.SuperColumn == "" {
		return statement{
			Stmt: StmtRemoveColumn(keyspace, path.ColumnFamily),
			Args: []interface{}{timestamp, key, path.Column, ""},
		}
	}
	if path.Column == "" {
		return statement{
			Stmt: StmtRemoveSuperColumn(keyspace, path.ColumnFamily),
			Args: []interface{}{timestamp, key, path.SuperColumn},
		}
	}
	return statement{
		Stmt: StmtRemoveColumn(keyspace, path.ColumnFamily),
		Args: []interface{}{timestamp, key, path.SuperColumn, path.Column},
	}
}

func getStatement(keyspace, key string, path ColumnPath) statement {
	s := stmtSelect(keyspace, path.ColumnFamily)
	s += fmt.Sprintf(" and %s = ? and %s = ?", ColName, ColSubName)
	if path.SuperColumn == "" {
		return statement{Stmt: s, Args: []interface{}{key, path.Column, ""}}
	}
	return statement{Stmt: s, Args: []interface{}{key, path.SuperColumn, path.Column}}
}

/*
bounds apply to column1 when parent is the column family,
and to column2 when parent is a super column.
reversed slices walk from Start down to Finish.
limit is only pushed down for super column parents,
top level entries are counted while folding.
*/
func sliceStatement(keyspace, key string, parent ColumnParent, p SlicePredicate) statement {
	s := stmtSelect(keyspace, parent.ColumnFamily)
	args := []interface{}{key}
	col := ColName

	if parent.SuperColumn != "" {
		s += fmt.Sprintf(" and %s = ?", ColName)
		args = append(args, parent.SuperColumn)
		col = ColSubName
	}

	lo, hi := p.Start, p.Finish
	if p.Reversed {
		lo, hi = hi, lo
	}
	if lo != "" {
		s += fmt.Sprintf(" and %s >= ?", col)
		args = append(args, lo)
	}
	if hi != "" {
		s += fmt.Sprintf(" and %s <= ?", col)
		args = append(args, hi)
	}

	if p.Reversed {
		s += fmt.Sprintf(" order by %s desc, %s desc", ColName, ColSubName)
	}

	if parent.SuperColumn != "" && p.Count > 0 {
		s += " limit ?"
		args = append(args, p.Count)
	}

	return statement{Stmt: s, Args: args}
}

func rangeStatement(keyspace, columnFamily, startKey, finishKey string, rowCount int) statement {
	s := fmt.Sprintf("select distinct %s from %s",
		ColKey, TableName(keyspace, columnFamily))
	args := make([]interface{}, 0, 3)
	where := make([]string, 0, 2)
	if startKey != "" {
		where = append(where, fmt.Sprintf("token(%s) >= token(?)", ColKey))
		args = append(args, startKey)
	}
	if finishKey != "" {
		where = append(where, fmt.Sprintf("token(%s) <= token(?)", ColKey))
		args = append(args, finishKey)
	}
	if len(where) > 0 {
		s += " where " + strings.Join(where, " and ")
	}
	if rowCount > 0 {
		s += " limit ?"
		args = append(args, rowCount)
	}
	return statement{Stmt: s, Args: args}
}

func StmtPKDef(pk *PrimaryKey) string {
	s := "primary key(("
	for i := 0; i < len(pk.PartitionColumns); i++ {
		s += pk.PartitionColumns[i].Name + ","
	}
	s = strings.TrimSuffix(s, ",")
	s += ")"
	if len(pk.ClusteringColumns) > 0 {
		s += ","
		for i := 0; i < len(pk.ClusteringColumns); i++ {
			s += pk.ClusteringColumns[i].Name + ","
		}
		s = strings.TrimSuffix(s, ",")
	}
	s += ")"
	return s
}

// StmtCreateTable lists columns in name order.
func StmtCreateTable(keyspace string, t *Table) string {
	names := make([]string, 0, len(t.Columns))
	for k := range t.Columns {
		names = append(names, k)
	}
	sort.Strings(names)

	s := "create table " + TableName(keyspace, t.Name) + " (\n"
	for _, k := range names {
		s += fmt.Sprintf("\t%s %s,\n", k, t.Columns[k].Type)
	}
	s += "\t" + StmtPKDef(t.PrimaryKey)
	s += "\n);\n"
	return s
}

func StmtDropTable(keyspace string, t *Table) string {
	return "drop table " + TableName(keyspace, t.Name) + ";\n"
}
