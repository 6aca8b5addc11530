package timing

import "time"

// TimerState represents the lifecycle state of a stage timer.
type TimerState string

const (
	StateIdle     TimerState = "idle"
	StateRunning  TimerState = "running"
	StatePaused   TimerState = "paused"
	StateComplete TimerState = "complete"
)

// Timer tracks the running time of a single production stage. Elapsed time
// accumulates across pause/resume cycles; paused intervals are excluded.
//
// The clock is injected so callers (and tests) control time without
// sleeping. Use time.Now in production.
type Timer struct {
	now     func() time.Time
	state   TimerState
	startAt *time.Time
	endAt   *time.Time
	elapsed time.Duration

	onChange func(TimerState)
}

// NewTimer creates an idle timer using the given clock.
func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now, state: StateIdle}
}

// OnStateChange registers a callback fired on every state transition.
// Presentation concern only; it has no effect on timing math.
func (t *Timer) OnStateChange(fn func(TimerState)) {
	t.onChange = fn
}

// Start transitions the timer to running. No-op when already running.
// StartAt is backdated by the accumulated elapsed time so that resuming
// continues from where the timer paused.
func (t *Timer) Start() {
	if t.state == StateRunning {
		return
	}
	start := t.now().Add(-t.elapsed)
	t.startAt = &start
	t.endAt = nil
	t.setState(StateRunning)
}

// Pause freezes the accumulated elapsed time. No-op when not running.
func (t *Timer) Pause() {
	if t.state != StateRunning {
		return
	}
	t.elapsed = t.now().Sub(*t.startAt)
	t.setState(StatePaused)
}

// Finish stamps the end time and transitions to complete. A running timer
// is paused first so elapsed time is final. Calling Finish on an already
// complete timer re-stamps the end time.
func (t *Timer) Finish() {
	t.Pause()
	end := t.now()
	t.endAt = &end
	t.setState(StateComplete)
}

// Reset clears all timing data and returns the timer to idle. When silent
// is true the state-change callback is suppressed.
func (t *Timer) Reset(silent bool) {
	t.startAt = nil
	t.endAt = nil
	t.elapsed = 0
	t.state = StateIdle
	if !silent && t.onChange != nil {
		t.onChange(StateIdle)
	}
}

// DurationMs returns the elapsed running time in milliseconds at this
// instant, live or final.
func (t *Timer) DurationMs() int64 {
	if t.state == StateRunning {
		return t.now().Sub(*t.startAt).Milliseconds()
	}
	return t.elapsed.Milliseconds()
}

// State returns the current lifecycle state.
func (t *Timer) State() TimerState { return t.state }

// Running reports whether the timer is currently running.
func (t *Timer) Running() bool { return t.state == StateRunning }

// StartAt returns the effective start timestamp, nil when never started.
func (t *Timer) StartAt() *time.Time { return t.startAt }

// EndAt returns the completion timestamp, nil until Finish is called.
func (t *Timer) EndAt() *time.Time { return t.endAt }

func (t *Timer) setState(s TimerState) {
	t.state = s
	if t.onChange != nil {
		t.onChange(s)
	}
}
