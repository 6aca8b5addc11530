package process

import (
	"fmt"
	"time"
)

// StageTiming is the per-stage slice of a multi-stage record. Timestamps
// are RFC 3339 strings on the wire; empty means the stage never reached
// that point.
type StageTiming struct {
	ID         string `json:"id"`
	Start      string `json:"start"`
	End        string `json:"end"`
	DurationMs int64  `json:"durationMs"`
}

// Timing is the overall start/end/duration block of a record. DurationMs is
// a pointer so an absent value stays distinguishable from a zero duration.
type Timing struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	DurationMs *int64 `json:"durationMs,omitempty"`
}

// Totals aggregates a multi-stage unit: machine time, dead time between
// stages, and their sum.
type Totals struct {
	MachineTotalMs int64 `json:"machineTotalMs"`
	DeadTotalMs    int64 `json:"deadTotalMs"`
	OverallMs      int64 `json:"overallMs"`
}

// Transition quantifies the wait a lot spent between leaving one station
// and starting at the next. DeltaMs may be negative when the clocks or the
// operator entries disagree; that anomaly is surfaced, not hidden. Delta is
// the operator-facing HH:MM:SS rendering, floored at zero.
type Transition struct {
	From    string `json:"from"`
	To      Panel  `json:"to"`
	FromEnd string `json:"fromEnd"`
	DeltaMs int64  `json:"deltaMs"`
	Delta   string `json:"delta"`
	LotID   string `json:"lotId"`
}

// Record is one submission of a completed unit-of-work. It is immutable
// once built; Stages, DeadTimesMs and Totals are present only for
// multi-stage units.
type Record struct {
	Panel       Panel             `json:"panel"`
	Unit        string            `json:"unit"`
	Timestamp   string            `json:"timestamp"`
	Shift       map[string]string `json:"shift,omitempty"`
	Form        map[string]string `json:"form,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	Stages      []StageTiming     `json:"stages,omitempty"`
	DeadTimesMs []int64           `json:"deadTimesMs,omitempty"`
	Totals      *Totals           `json:"totals,omitempty"`
	Timing      Timing            `json:"timing"`
	Transition  *Transition       `json:"transition,omitempty"`
}

// StoredRecord is a Record after persistence: a server-assigned ID, a
// creation timestamp, and the derived numeric metrics the analytics
// engines operate on. Nil metrics mean the submission carried no usable
// value, which is different from zero.
type StoredRecord struct {
	ID         string     `json:"id"`
	Panel      Panel      `json:"panel"`
	Unit       string     `json:"unit"`
	Lote       *string    `json:"lote"`
	LotID      *string    `json:"lotId"`
	ShiftDate  *time.Time `json:"shiftDate"`
	DurationMs *int64     `json:"durationMs"`
	DeadMs     *int64     `json:"deadMs"`
	OverallMs  *int64     `json:"overallMs"`
	Data       Record     `json:"data"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// FormatDurationMs renders a millisecond count as HH:MM:SS, the format
// operators read on the floor displays.
func FormatDurationMs(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
