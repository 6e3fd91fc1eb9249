package profile

import (
	"errors"
	"sync"

	"github.com/bluecore/bluecore/pkg/logging"
)

var errNoFactory = errors.New("no module factory registered")

// BatchResult aggregates the terminal outcomes of one start or stop
// batch. A batch is complete once every targeted module has reported
// some terminal outcome; individual failures never block the rest.
type BatchResult struct {
	Mode   Mode
	Failed []string
}

// Degraded reports whether any module in the batch failed.
func (r BatchResult) Degraded() bool {
	return len(r.Failed) > 0
}

type handle struct {
	descriptor Descriptor
	module     Module
	state      LifecycleState
}

type outcome struct {
	name string
	err  error
}

// Orchestrator starts and stops the enabled profile modules for a mode.
// Requests are issued in registry order but run concurrently; the single
// done callback fires once all targets have settled, from a collector
// goroutine. Completion order across modules carries no guarantee.
type Orchestrator struct {
	registry *Registry
	logger   logging.Logger

	mu      sync.Mutex
	handles map[string]*handle
}

// NewOrchestrator returns an orchestrator over the given registry.
func NewOrchestrator(registry *Registry, logger logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Orchestrator{
		registry: registry,
		logger:   logger.With("component", "orchestrator"),
		handles:  make(map[string]*handle),
	}
}

// StartBatch starts every enabled module matching the mode. Modules
// already running (or mid-start) settle immediately as no-ops.
func (o *Orchestrator) StartBatch(mode Mode, done func(BatchResult)) {
	targets := o.registry.Enabled(mode)
	settled := make(chan outcome, len(targets))
	for _, d := range targets {
		o.issueStart(d, settled)
	}
	go o.collect(mode, len(targets), settled, done)
}

// StopBatch stops every enabled module matching the mode. Modules
// already stopped settle immediately as no-ops.
func (o *Orchestrator) StopBatch(mode Mode, done func(BatchResult)) {
	targets := o.registry.Enabled(mode)
	settled := make(chan outcome, len(targets))
	for _, d := range targets {
		o.issueStop(d, settled)
	}
	go o.collect(mode, len(targets), settled, done)
}

// Running reports whether the named profile currently has a running
// instance.
func (o *Orchestrator) Running(name string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	h, ok := o.handles[name]
	return ok && h.state == Running
}

func (o *Orchestrator) collect(mode Mode, n int, settled <-chan outcome, done func(BatchResult)) {
	res := BatchResult{Mode: mode}
	for i := 0; i < n; i++ {
		out := <-settled
		if out.err != nil {
			res.Failed = append(res.Failed, out.name)
		}
	}
	done(res)
}

func (o *Orchestrator) issueStart(d Descriptor, settled chan<- outcome) {
	o.mu.Lock()
	if h, ok := o.handles[d.Name]; ok && (h.state == Running || h.state == Starting) {
		o.mu.Unlock()
		o.logger.Debug("Profile already started, skipping", "profile", d.Name)
		settled <- outcome{name: d.Name}
		return
	}
	factory, ok := o.registry.factory(d.Name)
	if !ok {
		o.mu.Unlock()
		settled <- outcome{name: d.Name, err: &StartError{Name: d.Name, Err: errNoFactory}}
		return
	}
	mod := factory(o.logger.With("profile", d.Name))
	h := &handle{descriptor: d, module: mod, state: Starting}
	o.handles[d.Name] = h
	o.mu.Unlock()

	o.logger.Info("Starting profile", "profile", d.Name)
	mod.Start(func(err error) {
		o.mu.Lock()
		if err != nil {
			delete(o.handles, d.Name)
		} else {
			h.state = Running
		}
		o.mu.Unlock()
		if err != nil {
			serr := &StartError{Name: d.Name, Err: err}
			o.logger.Error("Profile failed to start", "profile", d.Name, "error", err)
			settled <- outcome{name: d.Name, err: serr}
			return
		}
		o.logger.Info("Profile running", "profile", d.Name)
		settled <- outcome{name: d.Name}
	})
}

func (o *Orchestrator) issueStop(d Descriptor, settled chan<- outcome) {
	o.mu.Lock()
	h, ok := o.handles[d.Name]
	if !ok || h.state == Stopped || h.state == Stopping {
		o.mu.Unlock()
		o.logger.Debug("Profile already stopped, skipping", "profile", d.Name)
		settled <- outcome{name: d.Name}
		return
	}
	h.state = Stopping
	mod := h.module
	o.mu.Unlock()

	o.logger.Info("Stopping profile", "profile", d.Name)
	mod.Stop(func(err error) {
		// The handle is destroyed either way; a failed stop leaves nothing
		// worth keeping around.
		o.mu.Lock()
		delete(o.handles, d.Name)
		o.mu.Unlock()
		if err != nil {
			serr := &StopError{Name: d.Name, Err: err}
			o.logger.Error("Profile failed to stop cleanly", "profile", d.Name, "error", err)
			settled <- outcome{name: d.Name, err: serr}
			return
		}
		o.logger.Info("Profile stopped", "profile", d.Name)
		settled <- outcome{name: d.Name}
	})
}
