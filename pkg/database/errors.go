package database

import "errors"

// ErrNotReady is returned by Ping before the startup ping succeeds and
// after shutdown begins. The readiness endpoint reports it as unavailable.
var ErrNotReady = errors.New("takeoff database not ready")

// startupError keeps the cause of a failed startup ping so later Ping
// calls can report it alongside ErrNotReady.
type startupError struct {
	cause error
}

func (e *startupError) Error() string {
	return "takeoff database startup ping failed: " + e.cause.Error()
}

func (e *startupError) Unwrap() []error {
	return []error{ErrNotReady, e.cause}
}
