package service

import "errors"

var (
	// ErrEmptyName rejects names that trim to nothing.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrNotFound reports an id with no matching record.
	ErrNotFound = errors.New("not found")

	// ErrCircularDependency rejects a move whose destination is the location
	// itself or one of its descendants.
	ErrCircularDependency = errors.New("move would create a cycle")

	// ErrInvalidQuantity rejects item quantities below one.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrNoMapImage reports a hotspot operation on a location that has no
	// map image assigned.
	ErrNoMapImage = errors.New("location has no map image")
)
