package process

import (
	"regexp"
	"strings"
	"time"
)

var shiftDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// deriveMetrics resolves the three stored metrics from a record. A metric
// the submission carries no usable value for stays nil; zero is a valid
// and different signal. The overall metric always resolves, defaulting to
// the sum of whatever the other two contributed.
func deriveMetrics(rec Record) (durationMs, deadMs, overallMs *int64) {
	switch {
	case rec.Timing.DurationMs != nil:
		v := *rec.Timing.DurationMs
		durationMs = &v
	case rec.Totals != nil:
		v := rec.Totals.MachineTotalMs
		durationMs = &v
	case len(rec.Stages) > 0:
		var sum int64
		for _, st := range rec.Stages {
			sum += st.DurationMs
		}
		durationMs = &sum
	}

	switch {
	case rec.Totals != nil:
		v := rec.Totals.DeadTotalMs
		deadMs = &v
	case rec.DeadTimesMs != nil:
		var sum int64
		for _, ms := range rec.DeadTimesMs {
			sum += ms
		}
		deadMs = &sum
	}

	if rec.Totals != nil {
		v := rec.Totals.OverallMs
		overallMs = &v
	} else {
		var sum int64
		if durationMs != nil {
			sum += *durationMs
		}
		if deadMs != nil {
			sum += *deadMs
		}
		overallMs = &sum
	}
	return durationMs, deadMs, overallMs
}

// deriveLot resolves the free-text lot label and the canonical lot id used
// for cross-station correlation.
func deriveLot(rec Record) (lote, lotID *string) {
	label := ResolveLotID(rec.Form, rec.Shift)
	if label == "" {
		label = strings.TrimSpace(rec.Shift["lote"])
	}
	if label != "" {
		lote = &label
	}

	var id string
	switch {
	case rec.Transition != nil && rec.Transition.LotID != "":
		id = rec.Transition.LotID
	case strings.TrimSpace(rec.Shift["dailyLot"]) != "":
		id = strings.TrimSpace(rec.Shift["dailyLot"])
	case label != "":
		id = label
	}
	if id != "" {
		lotID = &id
	}
	return lote, lotID
}

// deriveShiftDate parses the shift's date field into a UTC midnight
// timestamp. Values without a recognizable YYYY-MM-DD date resolve to nil.
func deriveShiftDate(rec Record) *time.Time {
	raw := strings.TrimSpace(rec.Shift["shiftDate"])
	if raw == "" {
		return nil
	}
	m := shiftDatePattern.FindString(raw)
	if m == "" {
		return nil
	}
	day, err := time.ParseInLocation("2006-01-02", m, time.UTC)
	if err != nil {
		return nil
	}
	return &day
}

// parseWireTime parses an RFC 3339 timestamp off the wire. An empty or
// malformed value reports false.
func parseWireTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	at, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}
