package state

// Observer receives every adapter state change as a (prev, next) pair.
// Callbacks are delivered in transition order from the machine's event
// loop and must not block.
type Observer interface {
	OnAdapterStateChange(prev, next State)
}
