// Package panel models the detail slide panel's open/close lifecycle. The
// panel reports closed immediately when dismissed, but keeps its selected id
// through a short delay so the closing animation renders the old content.
package panel

import (
	"sync"
	"time"
)

// Phase is the panel's lifecycle position.
type Phase int

const (
	// PhaseClosed means no panel is visible and no id is selected.
	PhaseClosed Phase = iota
	// PhaseOpen means the panel is visible with a selected id.
	PhaseOpen
	// PhaseClosing means the panel is dismissed but still holds its id
	// until the clear delay elapses.
	PhaseClosing
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpen:
		return "open"
	case PhaseClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Scheduler defers a function and returns a cancel func.
type Scheduler func(d time.Duration, fn func()) (cancel func())

func defaultScheduler(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}

// Panel tracks which entity detail is shown in the slide-over panel.
// All methods are safe for concurrent use.
type Panel struct {
	mu          sync.Mutex
	phase       Phase
	selectedID  string
	cancelClear func()
	delay       time.Duration
	schedule    Scheduler
	onChange    func()
}

// Option customizes a Panel.
type Option func(*Panel)

// WithClearDelay changes how long a dismissed panel keeps its selected id.
func WithClearDelay(d time.Duration) Option {
	return func(p *Panel) {
		if d >= 0 {
			p.delay = d
		}
	}
}

// WithScheduler replaces the deferred-clear timer, typically in tests.
func WithScheduler(s Scheduler) Option {
	return func(p *Panel) {
		if s != nil {
			p.schedule = s
		}
	}
}

// WithOnChange registers a callback fired after every state transition.
func WithOnChange(fn func()) Option {
	return func(p *Panel) {
		p.onChange = fn
	}
}

// New builds a closed panel.
func New(opts ...Option) *Panel {
	p := &Panel{
		delay:    250 * time.Millisecond,
		schedule: defaultScheduler,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Phase returns the current lifecycle phase.
func (p *Panel) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// IsOpen reports whether the panel should render as visible.
func (p *Panel) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase == PhaseOpen
}

// SelectedID returns the id whose detail the panel shows. It stays populated
// during the closing phase so the slide-out animation keeps its content.
func (p *Panel) SelectedID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selectedID
}

// Open shows the panel for the given id. Opening while a deferred clear is
// pending cancels the clear, so reopening never loses the new selection.
func (p *Panel) Open(id string) {
	p.mu.Lock()
	cancel := p.cancelClear
	p.cancelClear = nil
	p.phase = PhaseOpen
	p.selectedID = id
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.fireChange()
}

// Close dismisses the panel. The phase flips immediately, but the selected id
// is cleared only after the configured delay.
func (p *Panel) Close() {
	p.mu.Lock()
	if p.phase != PhaseOpen {
		p.mu.Unlock()
		return
	}
	p.phase = PhaseClosing
	delay := p.delay
	p.mu.Unlock()
	p.fireChange()

	cancel := p.schedule(delay, p.finishClose)
	p.mu.Lock()
	if p.phase == PhaseClosing {
		p.cancelClear = cancel
		cancel = nil
	}
	p.mu.Unlock()
	// Panel was reopened or fully closed before the timer registered.
	if cancel != nil {
		cancel()
	}
}

// Toggle opens the panel for id, or closes it when id is already shown.
func (p *Panel) Toggle(id string) {
	p.mu.Lock()
	samePhaseOpen := p.phase == PhaseOpen && p.selectedID == id
	p.mu.Unlock()
	if samePhaseOpen {
		p.Close()
		return
	}
	p.Open(id)
}

func (p *Panel) finishClose() {
	p.mu.Lock()
	if p.phase != PhaseClosing {
		p.mu.Unlock()
		return
	}
	p.phase = PhaseClosed
	p.selectedID = ""
	p.cancelClear = nil
	p.mu.Unlock()
	p.fireChange()
}

func (p *Panel) fireChange() {
	if p.onChange != nil {
		p.onChange()
	}
}
