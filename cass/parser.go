package cass

import (
	"fmt"

	"github.com/kzaag/colfam/cmn"
	"gopkg.in/yaml.v2"
)

// KeyRow is one row to insert, as read from a yaml file:
//
//	key: jsmith
//	columns:
//	  first: John
//	  address:
//	    city: Oslo
type KeyRow struct {
	Key     string
	Columns Row
}

func ParserValidateRow(r *KeyRow, path string) error {
	if r.Key == "" {
		return fmt.Errorf("Validate %s: row doesnt have key specified", path)
	}
	if len(r.Columns) == 0 {
		return fmt.Errorf("Validate %s: row %s doesnt have columns", path, r.Key)
	}
	for name, v := range r.Columns {
		if name == "" {
			return fmt.Errorf("Validate %s: row %s has column without name", path, r.Key)
		}
		if !v.IsSuper() {
			continue
		}
		for _, sub := range v.Columns() {
			if sub == "" {
				return fmt.Errorf("Validate %s: %s[%s] has sub-column without name", path, r.Key, name)
			}
			sv, _ := v.Column(sub)
			if sv.IsSuper() {
				return fmt.Errorf("Validate %s: %s[%s][%s]: %v", path, r.Key, name, sub, ErrNestedSuperColumn)
			}
		}
	}
	return nil
}

/*
file holds either a single row (key + columns)
or a list of rows under "rows".
*/
func ParserGetRows(path string, fc []byte) ([]KeyRow, error) {
	var obj struct {
		Key     string
		Columns Row
		Rows    []KeyRow
	}
	if err := yaml.Unmarshal(fc, &obj); err != nil {
		return nil, fmt.Errorf("couldnt unmarshal %s %s", path, err.Error())
	}
	single := obj.Key != "" || obj.Columns != nil
	if single == (obj.Rows != nil) {
		return nil, fmt.Errorf("couldnt validate %s, assert row xor rows failed", path)
	}
	rows := obj.Rows
	if single {
		rows = []KeyRow{{Key: obj.Key, Columns: obj.Columns}}
	}
	for i := range rows {
		if err := ParserValidateRow(&rows[i], path); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// ParserGetRowsInPath reads rows from a yaml file or every yaml file under a directory.
func ParserGetRowsInPath(p string) ([]KeyRow, error) {
	ret := make([]KeyRow, 0)
	err := cmn.IterateOverSource(
		p,
		[]string{".yml", ".yaml"},
		func(path string, fc []byte) error {
			rows, err := ParserGetRows(path, fc)
			if err != nil {
				return err
			}
			ret = append(ret, rows...)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
