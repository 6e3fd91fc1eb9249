package state

// Radio drives the native radio stack. Implementations must not block;
// completion is reported through the callback, possibly from another
// goroutine. The machine enforces no timeout on either call; the stack
// is expected to report within a bounded delay.
type Radio interface {
	// BringUp initializes the radio to a usable state. A non-nil error
	// in the callback means bring-up failed and the radio is down.
	BringUp(done func(err error))
	// BringDown shuts the radio off.
	BringDown(done func())
}
