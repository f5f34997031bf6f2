package collections

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// ─────────────────────────────────────────────────────────────────────────────
// Operator comparison policy
//
// Compare is the single comparison routine behind Where, Every, Contains
// and FirstWhere. It is deliberately standalone so the policy can be
// tested without a container.
// ─────────────────────────────────────────────────────────────────────────────

// Compare applies op ("=", "==", "===", "!=", "<>", "!==", "<", ">",
// "<=", ">=") to a retrieved item value and a comparison value.
//
// When exactly one side is an object without a textual representation
// (maps, slices, plain structs) and the other side is not, every equality
// operator yields false and every inequality operator yields true,
// regardless of the values. Unrecognized operators yield false.
func Compare(retrieved any, op string, value any) bool {
	if hasTextForm(retrieved) != hasTextForm(value) {
		switch op {
		case "=", "==", "===":
			return false
		case "!=", "<>", "!==":
			return true
		}
		return false
	}

	switch op {
	case "=", "==":
		return looseEqual(retrieved, value)
	case "===":
		return strictEqual(retrieved, value)
	case "!=", "<>":
		return !looseEqual(retrieved, value)
	case "!==":
		return !strictEqual(retrieved, value)
	case "<":
		return orderOf(retrieved, value) < 0
	case ">":
		return orderOf(retrieved, value) > 0
	case "<=":
		return orderOf(retrieved, value) <= 0
	case ">=":
		return orderOf(retrieved, value) >= 0
	}
	return false
}

// hasTextForm reports whether a value has a textual representation:
// nil, booleans, numbers, strings, byte slices and fmt.Stringer types do;
// bare maps, slices and structs do not.
func hasTextForm(v any) bool {
	switch v.(type) {
	case nil, bool, string, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	case fmt.Stringer:
		return true
	case error:
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Func:
		return false
	}
	return true
}

// looseEqual compares with type coercion: numeric forms compare as
// float64, everything else by string form. nil equals only nil.
func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	af, aerr := cast.ToFloat64E(a)
	bf, berr := cast.ToFloat64E(b)
	if aerr == nil && berr == nil {
		return af == bf
	}
	if !hasTextForm(a) || !hasTextForm(b) {
		return reflect.DeepEqual(a, b)
	}
	return cast.ToString(a) == cast.ToString(b)
}

// strictEqual requires identical dynamic types and deep-equal values.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// orderOf returns -1, 0 or 1: numeric comparison when both sides coerce
// to float64, otherwise lexical comparison of the string forms.
func orderOf(a, b any) int {
	af, aerr := cast.ToFloat64E(a)
	bf, berr := cast.ToFloat64E(b)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	as, bs := cast.ToString(a), cast.ToString(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

// truthy mirrors loose boolean conversion: nil, false, zero and the empty
// string are falsy; unconvertible values count as truthy when non-nil.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, err := cast.ToBoolE(v); err == nil {
		return b
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return f != 0
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s != "" && s != "0"
	}
	return true
}
