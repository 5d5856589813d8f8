// Package patch turns the present fields of a parsed request body into a
// column/value set for a partial update.
//
// Input structs use pointer fields; a nil pointer means the key was absent.
// The column for a field comes from its `column` tag, falling back to the
// JSON name:
//
//	type UserPatch struct {
//	    Name  *string `json:"name"  column:"UserName"`
//	    Email *string `json:"email" column:"Email"`
//	}
package patch

import (
	"errors"
	"reflect"
	"sync"

	"github.com/shashiranjanraj/bizapi/pkg/validate"
)

// ErrNoFields is returned when the input carries no present field.
var ErrNoFields = errors.New("no fields to update")

// Field maps a struct field to its storage column.
type Field struct {
	Field  string
	Column string
	index  int
}

// Assignment is one `Column = Value` pair of a SET clause.
type Assignment struct {
	Column string
	Value  interface{}
}

// Set is an ordered list of assignments.
type Set []Assignment

// Map returns the set as a column → value map for gorm's Updates.
func (s Set) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(s))
	for _, a := range s {
		m[a.Column] = a.Value
	}
	return m
}

// Columns returns the column names in field order.
func (s Set) Columns() []string {
	cols := make([]string, len(s))
	for i, a := range s {
		cols[i] = a.Column
	}
	return cols
}

var descriptors sync.Map // reflect.Type → []Field

// Describe returns the ordered field descriptors of struct type t.
// Only pointer fields take part in a patch.
func Describe(t reflect.Type) []Field {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := descriptors.Load(t); ok {
		return cached.([]Field)
	}

	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Type.Kind() != reflect.Ptr {
			continue
		}
		column := sf.Tag.Get("column")
		if column == "-" {
			continue
		}
		if column == "" {
			column = validate.JSONName(sf)
		}
		fields = append(fields, Field{Field: sf.Name, Column: column, index: i})
	}

	descriptors.Store(t, fields)
	return fields
}

// Collect walks input's descriptors and appends `Column = value` for every
// non-nil field. An empty result yields ErrNoFields.
func Collect(input interface{}) (Set, error) {
	rv := reflect.ValueOf(input)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, ErrNoFields
		}
		rv = rv.Elem()
	}

	var set Set
	for _, f := range Describe(rv.Type()) {
		fv := rv.Field(f.index)
		if fv.IsNil() {
			continue
		}
		set = append(set, Assignment{Column: f.Column, Value: fv.Elem().Interface()})
	}

	if len(set) == 0 {
		return nil, ErrNoFields
	}
	return set, nil
}

// All returns an assignment for every descriptor, for a full replacement.
// An absent field is written as NULL.
func All(input interface{}) Set {
	rv := reflect.ValueOf(input)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	fields := Describe(rv.Type())
	set := make(Set, 0, len(fields))
	for _, f := range fields {
		fv := rv.Field(f.index)
		var value interface{}
		if !fv.IsNil() {
			value = fv.Elem().Interface()
		}
		set = append(set, Assignment{Column: f.Column, Value: value})
	}
	return set
}
