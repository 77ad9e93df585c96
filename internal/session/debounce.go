package session

import (
	"sort"
	"sync"
	"time"
)

// DefaultDebounce is the quiescence window applied to text-query input.
const DefaultDebounce = 300 * time.Millisecond

// Timer is a scheduled call that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed calls. RealClock uses the runtime timers; tests
// use ManualClock to advance time explicitly.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock schedules with time.AfterFunc.
type RealClock struct{}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer delays a call until no new call has been triggered for the
// window. Each Trigger replaces the pending call, so only the last one runs.
type Debouncer struct {
	window time.Duration
	clock  Clock

	mu      sync.Mutex
	timer   Timer
	pending func()
	gen     uint64
}

// NewDebouncer creates a debouncer. A nil clock means RealClock.
func NewDebouncer(window time.Duration, clock Clock) *Debouncer {
	if clock == nil {
		clock = RealClock{}
	}
	return &Debouncer{window: window, clock: clock}
}

// Window returns the quiescence window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Trigger schedules fn to run once the window elapses without another Trigger.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = d.clock.AfterFunc(d.window, func() { d.fire(gen) })
}

// Pending reports whether a call is waiting for the window to elapse.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Flush runs the pending call immediately, if any.
func (d *Debouncer) Flush() {
	if fn := d.take(); fn != nil {
		fn()
	}
}

// Stop drops the pending call, if any.
func (d *Debouncer) Stop() {
	d.take()
}

func (d *Debouncer) take() func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	fn := d.pending
	d.pending = nil
	return fn
}

// fire runs the pending call unless it was superseded after the timer started.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}

// ManualClock is a Clock whose time only moves when Advance is called.
// Due calls run synchronously on the goroutine calling Advance.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock   *ManualClock
	when    time.Time
	seq     int
	fn      func()
	stopped bool
}

// NewManualClock creates a clock starting at the zero time.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// AfterFunc schedules f to run once the clock has advanced by d.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &manualTimer{clock: c, when: c.now.Add(d), seq: c.seq, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d and runs every call that became due,
// in deadline order.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now

	var due []*manualTimer
	remaining := c.timers[:0]
	for _, t := range c.timers {
		switch {
		case t.stopped:
		case !t.when.After(now):
			due = append(due, t)
		default:
			remaining = append(remaining, t)
		}
	}
	c.timers = remaining
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if !due[i].when.Equal(due[j].when) {
			return due[i].when.Before(due[j].when)
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		c.mu.Lock()
		stopped := t.stopped
		c.mu.Unlock()
		if !stopped {
			t.fn()
		}
	}
}

// Scheduled returns the number of calls still waiting.
func (c *ManualClock) Scheduled() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}
