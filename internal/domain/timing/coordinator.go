package timing

import (
	"errors"
	"time"
)

// ErrUnknownStage indicates a stage ID not present in the coordinator.
var ErrUnknownStage = errors.New("unknown stage")

// Stage is a timer with a stable identity and ordinal position inside a
// multi-stage unit.
type Stage struct {
	ID      string
	Ordinal int
	Timer   *Timer
}

// StageCoordinator manages the ordered stages of one unit-of-work, such as
// a mixer with two kneading stages. It enforces that at most one stage of
// the group runs at a time and maintains the inter-stage dead-time series
// and aggregate totals.
type StageCoordinator struct {
	unitID      string
	now         func() time.Time
	stages      []*Stage
	deadTimesMs []int64
}

// NewStageCoordinator creates a coordinator with one idle timer per stage
// ID, in order.
func NewStageCoordinator(unitID string, stageIDs []string, now func() time.Time) *StageCoordinator {
	if now == nil {
		now = time.Now
	}
	sc := &StageCoordinator{
		unitID: unitID,
		now:    now,
	}
	for i, id := range stageIDs {
		sc.stages = append(sc.stages, &Stage{ID: id, Ordinal: i, Timer: NewTimer(now)})
	}
	if n := len(stageIDs); n > 1 {
		sc.deadTimesMs = make([]int64, n-1)
	}
	return sc
}

// UnitID returns the unit this coordinator belongs to.
func (sc *StageCoordinator) UnitID() string { return sc.unitID }

// Stages returns the ordered stage list.
func (sc *StageCoordinator) Stages() []*Stage { return sc.stages }

// Stage returns the stage with the given ID, or nil.
func (sc *StageCoordinator) Stage(id string) *Stage {
	for _, s := range sc.stages {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Activate starts the given stage. Any other stage currently running in the
// group is finished first, since one physical machine processes one stage
// at a time. The IDs of force-finished stages are returned so callers can
// react to the side effect.
func (sc *StageCoordinator) Activate(stageID string) ([]string, error) {
	target := sc.Stage(stageID)
	if target == nil {
		return nil, ErrUnknownStage
	}
	var finished []string
	for _, s := range sc.stages {
		if s != target && s.Timer.Running() {
			s.Timer.Finish()
			finished = append(finished, s.ID)
		}
	}
	target.Timer.Start()
	sc.recompute()
	return finished, nil
}

// Pause pauses the given stage.
func (sc *StageCoordinator) Pause(stageID string) error {
	s := sc.Stage(stageID)
	if s == nil {
		return ErrUnknownStage
	}
	s.Timer.Pause()
	sc.recompute()
	return nil
}

// Finish completes the given stage.
func (sc *StageCoordinator) Finish(stageID string) error {
	s := sc.Stage(stageID)
	if s == nil {
		return ErrUnknownStage
	}
	s.Timer.Finish()
	sc.recompute()
	return nil
}

// ResetStage returns one stage to idle. Dead times are recomputed, which
// matters when an operator resets a stage after a later one already
// started.
func (sc *StageCoordinator) ResetStage(stageID string) error {
	s := sc.Stage(stageID)
	if s == nil {
		return ErrUnknownStage
	}
	s.Timer.Reset(false)
	sc.recompute()
	return nil
}

// Reset returns every stage to idle and zeroes the dead-time series; used
// after a successful submission to prepare the unit for its next cycle.
func (sc *StageCoordinator) Reset() {
	for _, s := range sc.stages {
		s.Timer.Reset(true)
	}
	sc.recompute()
}

// DeadTimesMs returns the dead-time series, one entry per adjacent stage
// pair.
func (sc *StageCoordinator) DeadTimesMs() []int64 {
	out := make([]int64, len(sc.deadTimesMs))
	copy(out, sc.deadTimesMs)
	return out
}

// MachineTotalMs is the sum of all stage durations, live or final.
func (sc *StageCoordinator) MachineTotalMs() int64 {
	var total int64
	for _, s := range sc.stages {
		total += s.Timer.DurationMs()
	}
	return total
}

// DeadTotalMs is the sum of the dead-time series.
func (sc *StageCoordinator) DeadTotalMs() int64 {
	var total int64
	for _, ms := range sc.deadTimesMs {
		total += ms
	}
	return total
}

// OverallMs is machine total plus dead total.
func (sc *StageCoordinator) OverallMs() int64 {
	return sc.MachineTotalMs() + sc.DeadTotalMs()
}

// Status reports the group state: running when any stage runs, complete
// when every stage of a non-empty group has an end time, idle otherwise.
func (sc *StageCoordinator) Status() TimerState {
	if len(sc.stages) == 0 {
		return StateIdle
	}
	allFinished := true
	for _, s := range sc.stages {
		if s.Timer.Running() {
			return StateRunning
		}
		if s.Timer.EndAt() == nil {
			allFinished = false
		}
	}
	if allFinished {
		return StateComplete
	}
	return StateIdle
}

// recompute rebuilds the dead-time series from the current stage
// timestamps. Dead time between adjacent stages is the gap from the
// earlier stage's end to the later stage's start, floored at zero, and
// zero whenever either timestamp is missing.
func (sc *StageCoordinator) recompute() {
	for i := 1; i < len(sc.stages); i++ {
		sc.deadTimesMs[i-1] = 0
		start := sc.stages[i].Timer.StartAt()
		end := sc.stages[i-1].Timer.EndAt()
		if start != nil && end != nil {
			if gap := start.Sub(*end).Milliseconds(); gap > 0 {
				sc.deadTimesMs[i-1] = gap
			}
		}
	}
}
