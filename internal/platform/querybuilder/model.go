package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// fieldIndexes caches the db-tagged fields of each model type.
var fieldIndexes sync.Map // reflect.Type -> modelFields

type modelFields struct {
	columns []string
	index   []int
}

func fieldsOf(typ reflect.Type) (modelFields, error) {
	if cached, ok := fieldIndexes.Load(typ); ok {
		return cached.(modelFields), nil
	}

	var fields modelFields
	for n := 0; n < typ.NumField(); n++ {
		field := typ.Field(n)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		fields.columns = append(fields.columns, col)
		fields.index = append(fields.index, n)
	}
	if len(fields.columns) == 0 {
		return modelFields{}, fmt.Errorf("model %s has no db columns", typ)
	}

	fieldIndexes.Store(typ, fields)
	return fields, nil
}

// InsertModels builds a multi-row insert from structs of one type, taking the
// column list from their db tags. Errors surface from ToSQL.
func InsertModels[T any](table string, models ...T) *InsertBuilder {
	builder := InsertInto(table)
	if len(models) == 0 {
		builder.err = errors.New("insert: no models")
		return builder
	}

	typ := reflect.TypeOf(models[0])
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		builder.err = fmt.Errorf("insert: model must be a struct, got %T", models[0])
		return builder
	}
	fields, err := fieldsOf(typ)
	if err != nil {
		builder.err = err
		return builder
	}
	builder.Columns(fields.columns...)

	for n, model := range models {
		value := reflect.ValueOf(model)
		for value.Kind() == reflect.Pointer {
			if value.IsNil() {
				builder.err = fmt.Errorf("insert: model %d is nil", n)
				return builder
			}
			value = value.Elem()
		}
		row := make([]any, len(fields.index))
		for c, idx := range fields.index {
			row[c] = value.Field(idx).Interface()
		}
		builder.Values(row...)
	}
	return builder
}
