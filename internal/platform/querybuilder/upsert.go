package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// UpsertBuilder renders INSERT ... ON CONFLICT for a struct whose exported fields carry
// `db` tags. Fields tagged `db:"col,readonly"` are assigned by the database and never written.
type UpsertBuilder struct {
	table      string
	model      any
	conflict   []string
	update     []string
	updateRest bool
	touch      []string
	returning  []string
}

func Upsert(table string, model any) *UpsertBuilder {
	return &UpsertBuilder{table: table, model: model}
}

// OnConflict names the unique key. Without it the statement is a plain INSERT.
func (u *UpsertBuilder) OnConflict(columns ...string) *UpsertBuilder {
	u.conflict = columns
	return u
}

// Update overwrites only the listed columns on conflict; the rest keep their stored values.
func (u *UpsertBuilder) Update(columns ...string) *UpsertBuilder {
	u.update = columns
	return u
}

// UpdateRest overwrites every written column except the conflict key.
func (u *UpsertBuilder) UpdateRest() *UpsertBuilder {
	u.updateRest = true
	return u
}

// Touch sets the columns to NOW() on conflict.
func (u *UpsertBuilder) Touch(columns ...string) *UpsertBuilder {
	u.touch = columns
	return u
}

func (u *UpsertBuilder) Returning(columns ...string) *UpsertBuilder {
	u.returning = columns
	return u
}

func (u *UpsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(u.table) == "" {
		return "", nil, fmt.Errorf("upsert: no table")
	}
	columns, values, err := writableColumns(u.model)
	if err != nil {
		return "", nil, fmt.Errorf("upsert %s: %w", u.table, err)
	}

	var b binder
	b.write("INSERT INTO ", u.table, " (", strings.Join(columns, ", "), ") VALUES (")
	for i, v := range values {
		if i > 0 {
			b.write(", ")
		}
		b.write(b.bind(v))
	}
	b.write(")")

	if len(u.conflict) > 0 {
		for _, col := range u.conflict {
			if !slices.Contains(columns, col) {
				return "", nil, fmt.Errorf("upsert %s: conflict column %q is not written", u.table, col)
			}
		}
		b.write(" ON CONFLICT (", strings.Join(u.conflict, ", "), ")")

		set := u.assignments(columns)
		if len(set) == 0 {
			b.write(" DO NOTHING")
		} else {
			b.write(" DO UPDATE SET ", strings.Join(set, ", "))
		}
	}
	if len(u.returning) > 0 {
		b.write(" RETURNING ", strings.Join(u.returning, ", "))
	}
	return b.sql.String(), b.args, nil
}

func (u *UpsertBuilder) assignments(written []string) []string {
	update := u.update
	if u.updateRest {
		update = slices.DeleteFunc(slices.Clone(written), func(col string) bool {
			return slices.Contains(u.conflict, col)
		})
	}

	set := make([]string, 0, len(update)+len(u.touch))
	for _, col := range update {
		set = append(set, col+" = EXCLUDED."+col)
	}
	for _, col := range u.touch {
		set = append(set, col+" = NOW()")
	}
	return set
}

type modelField struct {
	column string
	index  int
}

var modelFields sync.Map // reflect.Type -> []modelField

func writableColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("nil model")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a struct, got %s", value.Kind())
	}

	fields := fieldsOf(value.Type())
	if len(fields) == 0 {
		return nil, nil, fmt.Errorf("model %s has no writable db columns", value.Type())
	}
	columns := make([]string, len(fields))
	values := make([]any, len(fields))
	for i, f := range fields {
		columns[i] = f.column
		values[i] = value.Field(f.index).Interface()
	}
	return columns, values, nil
}

func fieldsOf(typ reflect.Type) []modelField {
	if cached, ok := modelFields.Load(typ); ok {
		return cached.([]modelField)
	}

	fields := make([]modelField, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" || slices.Contains(strings.Split(opts, ","), "readonly") {
			continue
		}
		fields = append(fields, modelField{column: name, index: i})
	}

	modelFields.Store(typ, fields)
	return fields
}
