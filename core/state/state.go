package state

import "fmt"

// State is the adapter power state. There is exactly one current value,
// owned by the Machine; every change is delivered to observers as a
// (prev, next) pair.
type State int

const (
	Off State = iota
	BleTurningOn
	BleOn
	TurningOn
	On
	TurningOff
	BleTurningOff
)

func (s State) String() string {
	switch s {
	case Off:
		return "off"
	case BleTurningOn:
		return "ble_turning_on"
	case BleOn:
		return "ble_on"
	case TurningOn:
		return "turning_on"
	case On:
		return "on"
	case TurningOff:
		return "turning_off"
	case BleTurningOff:
		return "ble_turning_off"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
