package state

import (
	"errors"
	"sync/atomic"

	"github.com/bluecore/bluecore/core/profile"
	"github.com/bluecore/bluecore/pkg/logging"
)

// ErrClosed is returned when a request is posted to a machine that has
// been shut down.
var ErrClosed = errors.New("state machine is closed")

// Batcher issues profile batch commands downward; the aggregate
// completion arrives back through a single callback. The machine never
// reaches into individual profile modules.
type Batcher interface {
	StartBatch(mode profile.Mode, done func(profile.BatchResult))
	StopBatch(mode profile.Mode, done func(profile.BatchResult))
}

// NotifyFunc receives every state transition, in order, from the
// machine's event loop.
type NotifyFunc func(prev, next State)

type eventKind int

const (
	evEnable eventKind = iota
	evDisable
	evRadioReady
	evRadioFailed
	evRadioStopped
	evStartBatchDone
	evStopBatchDone
)

type event struct {
	kind   eventKind
	quiet  bool
	err    error
	result profile.BatchResult
}

// Machine is the adapter power state machine. All inputs (enable and
// disable requests, radio callbacks, batch completions) are events
// processed one at a time by a single goroutine, which is the only
// writer of the current state. At most one top-level request is in
// flight; an opposing request arriving mid-transition is recorded in a
// pending slot and applied once the in-flight operation settles.
type Machine struct {
	radio    Radio
	profiles Batcher
	notify   NotifyFunc
	logger   logging.Logger

	events chan event
	quit   chan struct{}
	done   chan struct{}

	current atomic.Int32

	// Everything below is owned by the event loop goroutine.
	state          State
	fullRequested  bool
	radioUp        bool
	radioPending   bool
	basicPending   bool
	bringupFailed  bool
	pendingDisable bool
	pendingEnable  *bool // quiet flag of a queued enable
}

// NewMachine creates a machine resting in Off. Call Start to begin
// processing requests.
func NewMachine(radio Radio, profiles Batcher, notify NotifyFunc, logger logging.Logger) *Machine {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Machine{
		radio:    radio,
		profiles: profiles,
		notify:   notify,
		logger:   logger.With("component", "statemachine"),
		events:   make(chan event, 32),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		state:    Off,
	}
}

// Start launches the event loop.
func (m *Machine) Start() {
	go m.loop()
}

// Close stops the event loop. Requests posted afterwards return
// ErrClosed. Close does not wind the radio down; callers that want a
// clean shutdown should Disable first and wait for Off.
func (m *Machine) Close() {
	select {
	case <-m.quit:
		return
	default:
	}
	close(m.quit)
	<-m.done
}

// State returns the current adapter state.
func (m *Machine) State() State {
	return State(m.current.Load())
}

// Enable requests bring-up. With quiet set, the machine rests at BleOn;
// otherwise it continues through TurningOn to On. The reply arrives only
// through state-change notifications.
func (m *Machine) Enable(quiet bool) error {
	return m.post(event{kind: evEnable, quiet: quiet})
}

// Disable requests graceful shutdown toward Off. The reply arrives only
// through state-change notifications.
func (m *Machine) Disable() error {
	return m.post(event{kind: evDisable})
}

func (m *Machine) post(ev event) error {
	select {
	case <-m.quit:
		return ErrClosed
	case m.events <- ev:
		return nil
	}
}

func (m *Machine) loop() {
	defer close(m.done)
	for {
		select {
		case <-m.quit:
			return
		case ev := <-m.events:
			m.handle(ev)
		}
	}
}

func (m *Machine) handle(ev event) {
	switch ev.kind {
	case evEnable:
		m.handleEnable(ev.quiet)
	case evDisable:
		m.handleDisable()
	case evRadioReady:
		m.handleRadioReady()
	case evRadioFailed:
		m.handleRadioFailed(ev.err)
	case evRadioStopped:
		m.handleRadioStopped()
	case evStartBatchDone:
		m.handleStartBatchDone(ev.result)
	case evStopBatchDone:
		m.handleStopBatchDone(ev.result)
	}
}

func (m *Machine) handleEnable(quiet bool) {
	switch m.state {
	case Off:
		m.beginEnable(quiet)
	case BleOn:
		if quiet {
			m.logger.Debug("Enable ignored, already at BLE level")
			return
		}
		m.continueFullEnable()
	case BleTurningOn, TurningOn, On:
		// Already enabling or enabled. A full request may still widen the
		// target of an in-flight quiet enable; nothing is re-issued.
		if !quiet {
			m.fullRequested = true
		}
		m.logger.Debug("Enable ignored, bring-up already in flight or complete", "state", m.state.String())
	case TurningOff, BleTurningOff:
		q := quiet
		m.pendingEnable = &q
		m.logger.Info("Enable queued until shutdown settles", "state", m.state.String())
	}
}

func (m *Machine) handleDisable() {
	switch m.state {
	case Off, TurningOff, BleTurningOff:
		m.logger.Debug("Disable ignored, already off or shutting down", "state", m.state.String())
	case On:
		m.beginDisableFromOn()
	case BleOn:
		m.beginDisableFromBleOn()
	case BleTurningOn, TurningOn:
		m.pendingDisable = true
		m.logger.Info("Disable queued until bring-up settles", "state", m.state.String())
	}
}

// beginEnable drives Off -> BleTurningOn: the radio bring-up request and
// the basic profile batch are issued together; BleOn is reached once
// both have settled.
func (m *Machine) beginEnable(quiet bool) {
	m.fullRequested = !quiet
	m.radioPending = true
	m.basicPending = true
	m.bringupFailed = false
	m.radioUp = false
	m.transition(BleTurningOn)
	m.radio.BringUp(func(err error) {
		if err != nil {
			_ = m.post(event{kind: evRadioFailed, err: err})
			return
		}
		_ = m.post(event{kind: evRadioReady})
	})
	m.profiles.StartBatch(profile.BasicOnly, func(res profile.BatchResult) {
		_ = m.post(event{kind: evStartBatchDone, result: res})
	})
}

func (m *Machine) handleRadioReady() {
	if m.state != BleTurningOn {
		m.logger.Debug("Stale radio-ready event", "state", m.state.String())
		return
	}
	m.radioUp = true
	m.radioPending = false
	m.maybeFinishBleBringup()
}

func (m *Machine) handleRadioFailed(err error) {
	if m.state != BleTurningOn {
		m.logger.Debug("Stale radio-failed event", "state", m.state.String())
		return
	}
	m.logger.Error("Radio bring-up failed, unwinding", "error", err)
	m.radioPending = false
	m.radioUp = false
	m.bringupFailed = true
	// The basic batch still settles on its own; the unwind starts once it
	// has, so no module is left mid-start.
	m.maybeFinishBleBringup()
}

func (m *Machine) handleStartBatchDone(res profile.BatchResult) {
	switch res.Mode {
	case profile.BasicOnly:
		if m.state != BleTurningOn {
			m.logger.Debug("Stale basic start batch completion", "state", m.state.String())
			return
		}
		if res.Degraded() {
			m.logger.Warn("Some basic profiles failed to start", "failed", res.Failed)
		}
		m.basicPending = false
		m.maybeFinishBleBringup()
	case profile.Full:
		if m.state != TurningOn {
			m.logger.Debug("Stale full start batch completion", "state", m.state.String())
			return
		}
		if res.Degraded() {
			// Degraded is not fatal: the adapter still comes up with the
			// profiles that made it.
			m.logger.Warn("Some profiles failed to start, continuing degraded", "failed", res.Failed)
		}
		m.transition(On)
		if m.pendingDisable {
			m.pendingDisable = false
			m.beginDisableFromOn()
		}
	}
}

func (m *Machine) maybeFinishBleBringup() {
	if m.radioPending || m.basicPending {
		return
	}
	if m.bringupFailed {
		m.pendingDisable = false
		m.beginDisableFromBleOn()
		return
	}
	m.transition(BleOn)
	if m.pendingDisable {
		m.pendingDisable = false
		m.beginDisableFromBleOn()
		return
	}
	if m.fullRequested {
		m.continueFullEnable()
	}
}

func (m *Machine) continueFullEnable() {
	m.fullRequested = true
	m.transition(TurningOn)
	m.profiles.StartBatch(profile.Full, func(res profile.BatchResult) {
		_ = m.post(event{kind: evStartBatchDone, result: res})
	})
}

func (m *Machine) beginDisableFromOn() {
	m.transition(TurningOff)
	m.profiles.StopBatch(profile.Full, func(res profile.BatchResult) {
		_ = m.post(event{kind: evStopBatchDone, result: res})
	})
}

func (m *Machine) beginDisableFromBleOn() {
	m.transition(BleTurningOff)
	m.profiles.StopBatch(profile.BasicOnly, func(res profile.BatchResult) {
		_ = m.post(event{kind: evStopBatchDone, result: res})
	})
}

func (m *Machine) handleStopBatchDone(res profile.BatchResult) {
	switch res.Mode {
	case profile.Full:
		if m.state != TurningOff {
			m.logger.Debug("Stale full stop batch completion", "state", m.state.String())
			return
		}
		if res.Degraded() {
			m.logger.Warn("Some profiles failed to stop cleanly", "failed", res.Failed)
		}
		m.transition(BleOn)
		// Disabling from On always continues down to Off.
		m.beginDisableFromBleOn()
	case profile.BasicOnly:
		if m.state != BleTurningOff {
			m.logger.Debug("Stale basic stop batch completion", "state", m.state.String())
			return
		}
		if res.Degraded() {
			m.logger.Warn("Some basic profiles failed to stop cleanly", "failed", res.Failed)
		}
		if m.radioUp {
			m.radio.BringDown(func() {
				_ = m.post(event{kind: evRadioStopped})
			})
			return
		}
		m.finishOff()
	}
}

func (m *Machine) handleRadioStopped() {
	if m.state != BleTurningOff {
		m.logger.Debug("Stale radio-stopped event", "state", m.state.String())
		return
	}
	m.radioUp = false
	m.finishOff()
}

func (m *Machine) finishOff() {
	m.transition(Off)
	m.fullRequested = false
	m.bringupFailed = false
	m.pendingDisable = false
	if m.pendingEnable != nil {
		quiet := *m.pendingEnable
		m.pendingEnable = nil
		m.beginEnable(quiet)
	}
}

func (m *Machine) transition(next State) {
	prev := m.state
	m.state = next
	m.current.Store(int32(next))
	m.logger.Info("Adapter state changed", "prev", prev.String(), "next", next.String())
	if m.notify != nil {
		m.notify(prev, next)
	}
}
