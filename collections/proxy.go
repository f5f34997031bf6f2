package collections

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/AEngine/entity/arr"
)

// ─────────────────────────────────────────────────────────────────────────────
// Higher-order proxies
//
// A proxy defers a Collection operation so it can be applied "through"
// each item's own behavior: the proxied call names a method (or readable
// property path) on the items rather than passing a closure.
//
//	p, _ := users.Proxy("map")
//	names, _ := p.Call("DisplayName")      // calls DisplayName() on each user
//
//	p, _ = orders.Proxy("sum")
//	total, _ := p.Call("total")            // reads the total field of each order
// ─────────────────────────────────────────────────────────────────────────────

// itemwiseOps apply the forwarded method call to each item and use the
// result as the per-item outcome.
var itemwiseOps = map[string]struct{}{
	"each": {}, "map": {}, "filter": {}, "partition": {}, "reject": {}, "every": {},
}

// valueOps resolve the forwarded name as a property/path read per item.
var valueOps = map[string]struct{}{
	"sum": {}, "avg": {}, "max": {}, "min": {}, "sortBy": {}, "groupBy": {},
	"keyBy": {}, "unique": {}, "contains": {}, "flatMap": {}, "first": {},
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

var proxyRegistry struct {
	mu    sync.RWMutex
	extra map[string]struct{}
}

// RegisterProxy extends the proxyable name set with an operation name
// treated as value-extracting.
func RegisterProxy(name string) {
	proxyRegistry.mu.Lock()
	defer proxyRegistry.mu.Unlock()
	if proxyRegistry.extra == nil {
		proxyRegistry.extra = make(map[string]struct{})
	}
	proxyRegistry.extra[name] = struct{}{}
}

// Proxies returns the currently proxyable operation names, sorted.
func Proxies() []string {
	proxyRegistry.mu.RLock()
	defer proxyRegistry.mu.RUnlock()
	out := make([]string, 0, len(itemwiseOps)+len(valueOps)+len(proxyRegistry.extra))
	for name := range itemwiseOps {
		out = append(out, name)
	}
	for name := range valueOps {
		out = append(out, name)
	}
	for name := range proxyRegistry.extra {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func proxyable(name string) bool {
	if _, ok := itemwiseOps[name]; ok {
		return true
	}
	if _, ok := valueOps[name]; ok {
		return true
	}
	proxyRegistry.mu.RLock()
	defer proxyRegistry.mu.RUnlock()
	_, ok := proxyRegistry.extra[name]
	return ok
}

// HigherOrderProxy is a deferred invocation of one Collection operation,
// bound to its collection. Call applies the operation using the named
// item method (item-wise operations) or property path (value-extracting
// operations).
type HigherOrderProxy struct {
	collection *Collection
	operation  string
}

// Proxy returns a deferred-call adapter for the named operation, or
// ErrUnknownProxy when the name is outside the registered proxy set.
func (c *Collection) Proxy(operation string) (*HigherOrderProxy, error) {
	if !proxyable(operation) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProxy, operation)
	}
	return &HigherOrderProxy{collection: c, operation: operation}, nil
}

// Call applies the proxied operation. For item-wise operations the method
// name is invoked on every item with the forwarded args; for
// value-extracting operations it is resolved as a path read per item.
func (p *HigherOrderProxy) Call(method string, args ...any) (any, error) {
	if _, ok := itemwiseOps[p.operation]; ok {
		return p.callItemwise(method, args)
	}
	return p.callValue(method)
}

func (p *HigherOrderProxy) callItemwise(method string, args []any) (any, error) {
	var callErr error
	outcome := func(item any) any {
		if callErr != nil {
			return nil
		}
		result, err := invokeMethod(item, method, args)
		if err != nil {
			callErr = err
		}
		return result
	}

	var result any
	switch p.operation {
	case "each":
		result = p.collection.Each(func(v, _ any) bool {
			outcome(v)
			return callErr == nil
		})
	case "map":
		result = p.collection.Map(func(v, _ any) any { return outcome(v) })
	case "filter":
		result = p.collection.Filter(func(v, _ any) bool { return truthy(outcome(v)) })
	case "reject":
		result = p.collection.Reject(func(v, _ any) bool { return truthy(outcome(v)) })
	case "every":
		result = p.collection.Every(func(v, _ any) bool { return truthy(outcome(v)) })
	case "partition":
		failed, passed := p.collection.Partition(func(v, _ any) bool { return truthy(outcome(v)) })
		result = Of(failed, passed)
	}
	if callErr != nil {
		return nil, callErr
	}
	return result, nil
}

func (p *HigherOrderProxy) callValue(path string) (any, error) {
	c := p.collection
	switch p.operation {
	case "sum":
		return c.Sum(path), nil
	case "avg":
		return c.Avg(path), nil
	case "max":
		return c.Max(path), nil
	case "min":
		return c.Min(path), nil
	case "sortBy":
		return c.SortBy(path), nil
	case "groupBy":
		return c.GroupBy(path), nil
	case "keyBy":
		return c.KeyBy(path), nil
	case "unique":
		return c.Unique(path), nil
	case "contains":
		return c.Contains(func(v, _ any) bool { return truthy(arr.Get(v, path)) }), nil
	case "flatMap":
		return c.FlatMap(func(v, _ any) any { return arr.Get(v, path) }), nil
	case "first":
		return c.First(func(v, _ any) bool { return truthy(arr.Get(v, path)) }), nil
	default:
		return c.Pluck(path), nil
	}
}

// invokeMethod calls the named exported method on item via reflection,
// forwarding args. A trailing error return is propagated; otherwise the
// first return value (or nil) is the outcome.
func invokeMethod(item any, method string, args []any) (any, error) {
	rv := reflect.ValueOf(item)
	m := rv.MethodByName(method)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %T has no method %q", ErrInvalidArgument, item, method)
	}
	mt := m.Type()
	if mt.IsVariadic() {
		if len(args) < mt.NumIn()-1 {
			return nil, fmt.Errorf("%w: %q expects at least %d arguments, got %d",
				ErrInvalidArgument, method, mt.NumIn()-1, len(args))
		}
	} else if mt.NumIn() != len(args) {
		return nil, fmt.Errorf("%w: %q expects %d arguments, got %d",
			ErrInvalidArgument, method, mt.NumIn(), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			in[i] = reflect.Zero(paramType(mt, i))
			continue
		}
		in[i] = reflect.ValueOf(a)
	}
	out := m.Call(in)
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return nil, err
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

// paramType returns the declared type of argument i, unwrapping the
// variadic slice for trailing positions.
func paramType(mt reflect.Type, i int) reflect.Type {
	if mt.IsVariadic() && i >= mt.NumIn()-1 {
		return mt.In(mt.NumIn() - 1).Elem()
	}
	return mt.In(i)
}
