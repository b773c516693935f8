package cass

import (
	"sort"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/kzaag/colfam/cmn"
)

// true if is the same
func MergeCmdPK(p1, p2 *PrimaryKey) bool {
	if p1 == nil || p2 == nil {
		return p1 == p2
	}
	if len(p1.ClusteringColumns) != len(p2.ClusteringColumns) {
		return false
	}
	if len(p1.PartitionColumns) != len(p2.PartitionColumns) {
		return false
	}
	for i := range p1.ClusteringColumns {
		if p2.ClusteringColumns[i].Name != p1.ClusteringColumns[i].Name {
			return false
		}
		if p2.ClusteringColumns[i].Order != p1.ClusteringColumns[i].Order {
			return false
		}
	}
	for i := range p1.PartitionColumns {
		if p2.PartitionColumns[i].Name != p1.PartitionColumns[i].Name {
			return false
		}
	}
	return true
}

// true if is the same
func MergeCmpColumns(lt, rt *Table) bool {
	if len(lt.Columns) != len(rt.Columns) {
		return false
	}
	for k, lc := range lt.Columns {
		rc, ok := rt.Columns[k]
		if !ok || rc.Type != lc.Type {
			return false
		}
	}
	return true
}

/*
Merge returns statements bringing remote tables in line with local ones.
Missing tables are created, tables with different layout are
dropped and created again. Local tables are visited in name order.
*/
func Merge(keyspace string, local, remote map[string]*Table) []string {
	names := make([]string, 0, len(local))
	for k := range local {
		names = append(names, k)
	}
	sort.Strings(names)

	drop := make([]string, 0)
	create := make([]string, 0)

	for _, k := range names {
		lt := local[k]
		rt, ok := remote[k]
		if !ok {
			create = append(create, StmtCreateTable(keyspace, lt))
			continue
		}
		if MergeCmdPK(lt.PrimaryKey, rt.PrimaryKey) && MergeCmpColumns(lt, rt) {
			continue
		}
		drop = append(drop, StmtDropTable(keyspace, rt))
		create = append(create, StmtCreateTable(keyspace, lt))
	}

	return append(drop, create...)
}

// SchemaSync computes the script creating tables for columnFamilies.
func SchemaSync(
	sess *gocql.Session, keyspace string, columnFamilies []string,
) ([]string, error) {
	local := make(map[string]*Table, len(columnFamilies))
	for _, cf := range columnFamilies {
		if cf == "" {
			return nil, ErrColumnFamilyRequired
		}
		local[cf] = ColumnFamilyTable(cf)
	}
	remote, err := RemoteGetMatchingTables(sess, keyspace, local)
	if err != nil {
		return nil, err
	}
	return Merge(keyspace, local, remote), nil
}

// ExecLines prints every statement to cmn.Stdout and runs it when execute is set.
func ExecLines(
	sess *gocql.Session, stmts []string, execute bool, log *cmn.Logger,
) (int, error) {
	done := 0
	var start time.Time

	for _, stmt := range stmts {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		cmn.Stdout.Write([]byte(stmt))
		if !execute {
			done++
			continue
		}
		start = time.Now()
		if err := sess.Query(strings.TrimSuffix(strings.TrimSpace(stmt), ";")).Exec(); err != nil {
			return done, err
		}
		log.Success("    ", "Query completed in %v.", time.Since(start))
		done++
	}

	if done == 0 {
		log.Success("", "Already up to date.")
	}

	return done, nil
}
