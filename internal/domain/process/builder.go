package process

import (
	"time"

	"github.com/Gsiblesz/Centro-Caracas/internal/domain/timing"
)

// Submission carries the contextual metadata the UI collects alongside the
// timers: which station and unit produced the work, the shift-wide fields,
// and the unit's own form fields.
type Submission struct {
	Panel Panel
	Unit  string
	Shift map[string]string
	Form  map[string]string
	Env   map[string]string
}

// BuildSingle assembles a Record from a single-timer unit. When the timer
// was never finished the end defaults to now: submitting while still
// running is permitted and reported as an implicit finish, though the
// timer's own state is the caller's responsibility.
func BuildSingle(sub Submission, t *timing.Timer, now time.Time) Record {
	start := ""
	if at := t.StartAt(); at != nil {
		start = at.UTC().Format(time.RFC3339Nano)
	}
	end := now.UTC().Format(time.RFC3339Nano)
	if at := t.EndAt(); at != nil {
		end = at.UTC().Format(time.RFC3339Nano)
	}
	durationMs := t.DurationMs()

	return Record{
		Panel:     sub.Panel,
		Unit:      sub.Unit,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Shift:     sub.Shift,
		Form:      sub.Form,
		Env:       sub.Env,
		Timing: Timing{
			Start:      start,
			End:        end,
			DurationMs: &durationMs,
		},
	}
}

// BuildStaged assembles a Record from a multi-stage unit. The record's
// overall start is the earliest non-empty stage start and its end the
// latest non-empty stage end. Rebuilding from the same finished
// coordinator yields identical output.
func BuildStaged(sub Submission, sc *timing.StageCoordinator, now time.Time) Record {
	stages := sc.Stages()
	stagePayload := make([]StageTiming, 0, len(stages))
	for _, stage := range stages {
		st := StageTiming{ID: stage.ID, DurationMs: stage.Timer.DurationMs()}
		if at := stage.Timer.StartAt(); at != nil {
			st.Start = at.UTC().Format(time.RFC3339Nano)
		}
		if at := stage.Timer.EndAt(); at != nil {
			st.End = at.UTC().Format(time.RFC3339Nano)
		}
		stagePayload = append(stagePayload, st)
	}

	start := ""
	for _, st := range stagePayload {
		if st.Start != "" {
			start = st.Start
			break
		}
	}
	end := ""
	for i := len(stagePayload) - 1; i >= 0; i-- {
		if stagePayload[i].End != "" {
			end = stagePayload[i].End
			break
		}
	}

	machineTotalMs := sc.MachineTotalMs()
	totals := &Totals{
		MachineTotalMs: machineTotalMs,
		DeadTotalMs:    sc.DeadTotalMs(),
		OverallMs:      sc.OverallMs(),
	}

	return Record{
		Panel:       sub.Panel,
		Unit:        sub.Unit,
		Timestamp:   now.UTC().Format(time.RFC3339Nano),
		Shift:       sub.Shift,
		Form:        sub.Form,
		Env:         sub.Env,
		Stages:      stagePayload,
		DeadTimesMs: sc.DeadTimesMs(),
		Totals:      totals,
		Timing: Timing{
			Start:      start,
			End:        end,
			DurationMs: &machineTotalMs,
		},
	}
}
