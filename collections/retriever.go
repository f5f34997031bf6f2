package collections

import (
	"github.com/AEngine/entity/arr"
	"github.com/spf13/cast"
)

// ValueRetriever turns a key spec into a uniform accessor. A nil spec is
// the identity; a callable spec is used as-is; a string spec is resolved
// as a dotted path against each item. Every key-parameterized operation
// (SortBy, GroupBy, KeyBy, Max, Min, Unique, Partition, Every) accepts
// its key through this conversion.
func ValueRetriever(spec any) func(item any) any {
	switch fn := spec.(type) {
	case nil:
		return func(item any) any { return item }
	case func(any) any:
		return fn
	case func(any, any) any:
		return func(item any) any { return fn(item, nil) }
	case string:
		return func(item any) any { return arr.Get(item, fn) }
	default:
		path := cast.ToString(spec)
		return func(item any) any { return arr.Get(item, path) }
	}
}

// specFrom returns the first optional spec or nil.
func specFrom(specs []any) any {
	if len(specs) > 0 {
		return specs[0]
	}
	return nil
}
