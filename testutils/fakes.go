package testutils

import (
	"sync"
	"time"

	"github.com/bluecore/bluecore/core/profile"
	"github.com/bluecore/bluecore/pkg/logging"
)

// TestTimeout is the default timeout for async assertions in tests.
const TestTimeout = 5 * time.Second

// TestInterval is the default polling interval for async assertions.
const TestInterval = 10 * time.Millisecond

// FakeRadio is a scriptable Radio collaborator. By default it completes
// every request asynchronously and successfully; set Manual to hold
// completions until the test releases them.
type FakeRadio struct {
	mu          sync.Mutex
	Manual      bool
	BringUpErr  error
	upCalls     int
	downCalls   int
	pendingUp   []func(error)
	pendingDown []func()
}

// NewFakeRadio returns a radio that auto-completes requests.
func NewFakeRadio() *FakeRadio {
	return &FakeRadio{}
}

func (r *FakeRadio) BringUp(done func(err error)) {
	r.mu.Lock()
	r.upCalls++
	err := r.BringUpErr
	if r.Manual {
		r.pendingUp = append(r.pendingUp, done)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	go done(err)
}

func (r *FakeRadio) BringDown(done func()) {
	r.mu.Lock()
	r.downCalls++
	if r.Manual {
		r.pendingDown = append(r.pendingDown, done)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	go done()
}

// ReleaseUp completes the oldest held bring-up request.
func (r *FakeRadio) ReleaseUp(err error) {
	r.mu.Lock()
	done := r.pendingUp[0]
	r.pendingUp = r.pendingUp[1:]
	r.mu.Unlock()
	go done(err)
}

// ReleaseDown completes the oldest held bring-down request.
func (r *FakeRadio) ReleaseDown() {
	r.mu.Lock()
	done := r.pendingDown[0]
	r.pendingDown = r.pendingDown[1:]
	r.mu.Unlock()
	go done()
}

// UpCalls returns how many bring-up requests were issued.
func (r *FakeRadio) UpCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.upCalls
}

// DownCalls returns how many bring-down requests were issued.
func (r *FakeRadio) DownCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.downCalls
}

// PendingUp returns how many bring-up completions are currently held.
func (r *FakeRadio) PendingUp() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pendingUp)
}

// FakeModule is a scriptable profile module. By default it completes
// start/stop asynchronously and successfully.
type FakeModule struct {
	name string

	mu           sync.Mutex
	Manual       bool
	StartErr     error
	StopErr      error
	startCalls   int
	stopCalls    int
	pendingStart []func(error)
	pendingStop  []func(error)
}

// NewFakeModule returns a module that auto-completes requests.
func NewFakeModule(name string) *FakeModule {
	return &FakeModule{name: name}
}

// Factory returns a profile factory handing out this same instance, so
// the test keeps its handle on call counters.
func (m *FakeModule) Factory() profile.Factory {
	return func(logging.Logger) profile.Module { return m }
}

func (m *FakeModule) Name() string { return m.name }

func (m *FakeModule) Start(done func(err error)) {
	m.mu.Lock()
	m.startCalls++
	err := m.StartErr
	if m.Manual {
		m.pendingStart = append(m.pendingStart, done)
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	go done(err)
}

func (m *FakeModule) Stop(done func(err error)) {
	m.mu.Lock()
	m.stopCalls++
	err := m.StopErr
	if m.Manual {
		m.pendingStop = append(m.pendingStop, done)
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	go done(err)
}

// ReleaseStart completes the oldest held start request.
func (m *FakeModule) ReleaseStart(err error) {
	m.mu.Lock()
	done := m.pendingStart[0]
	m.pendingStart = m.pendingStart[1:]
	m.mu.Unlock()
	go done(err)
}

// ReleaseStop completes the oldest held stop request.
func (m *FakeModule) ReleaseStop(err error) {
	m.mu.Lock()
	done := m.pendingStop[0]
	m.pendingStop = m.pendingStop[1:]
	m.mu.Unlock()
	go done(err)
}

// StartCalls returns how many start requests the module received.
func (m *FakeModule) StartCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startCalls
}

// StopCalls returns how many stop requests the module received.
func (m *FakeModule) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}
