package core

import "time"

// Hooks receives a notification after every completed client operation.
// Implementations must be safe for concurrent use. The built-in
// prometheus implementation lives in the observability package.
type Hooks interface {
	// ObserveOperation is called once per request with the operation name
	// (e.g. "write_file"), a status ("success" or the error kind) and the
	// round-trip duration.
	ObserveOperation(op, status string, d time.Duration)
}
