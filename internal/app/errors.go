package app

import "errors"

// Errors returned by application operations.
var (
	// ErrQuit signals a normal user-requested exit.
	ErrQuit = errors.New("quit")

	// ErrNoScreen indicates the terminal screen could not be created.
	ErrNoScreen = errors.New("no terminal screen")
)
