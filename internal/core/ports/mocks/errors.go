package mocks

import "errors"

var (
	// ErrInjected is a generic failure tests can return from xxxFn hooks.
	ErrInjected = errors.New("injected failure")
)
