package collections

import "errors"

// Sentinel errors returned by Collection operations.
var (
	// ErrUnknownProxy is returned when a higher-order proxy is requested
	// under a name outside the registered proxy set.
	ErrUnknownProxy = errors.New("collections: unknown higher-order proxy")

	// ErrUnknownOperation is returned by Call when a name has no built-in
	// meaning and no macro is registered for it, on this registry or any
	// ancestor.
	ErrUnknownOperation = errors.New("collections: unknown operation")

	// ErrInvalidArgument is returned for structurally invalid calls, such
	// as combining sequences of different lengths or forwarding a method
	// name no item implements.
	ErrInvalidArgument = errors.New("collections: invalid argument")

	// ErrNoMatchingItems is returned by FirstOrFail when no item satisfies
	// the predicate.
	ErrNoMatchingItems = errors.New("collections: no items match the given condition")
)
