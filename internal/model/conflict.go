package model

import (
	"log/slog"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// equalOpts defines when two registrations are the same. Function values, hooks included, compare
// by identity. Unexported fields of caller values take part, and nil collections equal empty ones.
var equalOpts = cmp.Options{
	cmp.FilterValues(bothFuncs, cmp.Comparer(sameFunc)),
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.EquateEmpty(),
}

func bothFuncs(a, b any) bool {
	return reflect.ValueOf(a).Kind() == reflect.Func && reflect.ValueOf(b).Kind() == reflect.Func
}

func sameFunc(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.IsNil() || vb.IsNil() {
		return va.IsNil() && vb.IsNil()
	}
	return va.Pointer() == vb.Pointer()
}

// findExisting looks for a row with the candidate's key. It returns true when an identical row is
// already present and a ConflictError when a row with the same key differs.
func findExisting[T any](logger *slog.Logger, rows []T, sameKey func(T) bool, candidate T, conflict *ConflictError) (bool, error) {
	for _, row := range rows {
		if !sameKey(row) {
			continue
		}
		if cmp.Equal(row, candidate, equalOpts) {
			return true, nil
		}
		logger.Debug("Discordant registration",
			"model", conflict.Model,
			"table", conflict.Table,
			"key", conflict.Key,
			"diff", cmp.Diff(row, candidate, equalOpts),
		)
		return false, conflict
	}
	return false, nil
}
