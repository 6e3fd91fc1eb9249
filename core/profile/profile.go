package profile

import (
	"fmt"

	"github.com/bluecore/bluecore/pkg/logging"
)

// Module is the capability interface every profile service implements.
// Start and Stop must not block; completion is reported through the done
// callback, possibly from another goroutine. Once issued, a request runs
// to a terminal outcome; there is no mid-flight cancellation.
type Module interface {
	Name() string
	Start(done func(err error))
	Stop(done func(err error))
}

// Factory builds a module instance for a registered profile name.
type Factory func(logger logging.Logger) Module

// Mode selects which subset of enabled profiles a batch targets.
type Mode int

const (
	// BasicOnly targets profiles that run on the low-energy radio layer.
	BasicOnly Mode = iota
	// Full targets profiles that need the radio fully enabled.
	Full
)

func (m Mode) String() string {
	switch m {
	case BasicOnly:
		return "basic"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// LifecycleState tracks a single running profile instance.
type LifecycleState int

const (
	Stopped LifecycleState = iota
	Starting
	Running
	Stopping
)

func (s LifecycleState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return fmt.Sprintf("LifecycleState(%d)", int(s))
	}
}

// StartError reports that a named profile failed to start.
type StartError struct {
	Name string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("profile '%s' failed to start: %v", e.Name, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// StopError reports that a named profile failed to stop cleanly.
type StopError struct {
	Name string
	Err  error
}

func (e *StopError) Error() string {
	return fmt.Sprintf("profile '%s' failed to stop: %v", e.Name, e.Err)
}

func (e *StopError) Unwrap() error { return e.Err }
