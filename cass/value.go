package cass

import (
	"fmt"
	"sort"
)

// Value is either a single column value or a set of sub-columns
// making up a super column. The zero Value is null.
type Value struct {
	str   string
	set   bool
	super map[string]Value
}

func Str(s string) Value {
	return Value{str: s, set: true}
}

func Null() Value {
	return Value{}
}

func Super(columns map[string]Value) Value {
	if columns == nil {
		columns = map[string]Value{}
	}
	return Value{super: columns}
}

func (v Value) IsSuper() bool {
	return v.super != nil
}

func (v Value) IsNull() bool {
	return !v.set && v.super == nil
}

// String returns the scalar value, "" for null and super values.
func (v Value) String() string {
	return v.str
}

// Columns returns sub-column names of a super value in order.
func (v Value) Columns() []string {
	return sortedNames(v.super)
}

func (v Value) Column(name string) (Value, bool) {
	c, ok := v.super[name]
	return c, ok
}

// UnmarshalYAML decodes scalars to Str, null to Null and mappings to Super.
func (v *Value) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Null()
	case map[interface{}]interface{}:
		m := make(map[string]Value, len(t))
		if err := unmarshal(&m); err != nil {
			return err
		}
		*v = Super(m)
	case []interface{}:
		return fmt.Errorf("column value cannot be a list")
	default:
		// keep scalar text as written, 1.50 stays "1.50"
		var s string
		if err := unmarshal(&s); err != nil {
			return err
		}
		*v = Str(s)
	}
	return nil
}

// Row maps top level column names to values.
type Row map[string]Value

func sortedNames(m map[string]Value) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
