package process

import (
	"strings"
	"sync"
	"time"
)

// LotTransitionTracker correlates the same physical lot as it moves between
// independently timed stations. For each lot it remembers the last
// completion timestamp per station so the next station downstream can
// compute how long the lot waited in between.
//
// The tracker is owned by the submission service and lives for the process
// lifetime; entries are never deleted. Safe for concurrent use.
type LotTransitionTracker struct {
	mu   sync.Mutex
	lots map[string]map[string]time.Time
}

// NewLotTransitionTracker returns an empty tracker.
func NewLotTransitionTracker() *LotTransitionTracker {
	return &LotTransitionTracker{lots: make(map[string]map[string]time.Time)}
}

// Transition computes the queue-time transition for a lot starting at
// panel p at the given instant. It returns nil when p has no previous
// station or the previous station has not completed this lot yet. The
// delta is not clamped: a negative value signals a data-entry or clock
// inconsistency the operator must see.
func (lt *LotTransitionTracker) Transition(lotID string, p Panel, start time.Time) *Transition {
	prev, ok := p.Previous()
	if !ok {
		return nil
	}
	prevKey := completionKeys[prev]

	lt.mu.Lock()
	defer lt.mu.Unlock()

	entry, ok := lt.lots[lotID]
	if !ok {
		return nil
	}
	fromEnd, ok := entry[prevKey]
	if !ok {
		return nil
	}

	deltaMs := start.Sub(fromEnd).Milliseconds()
	return &Transition{
		From:    strings.TrimSuffix(prevKey, "End"),
		To:      p,
		FromEnd: fromEnd.UTC().Format(time.RFC3339Nano),
		DeltaMs: deltaMs,
		Delta:   FormatDurationMs(deltaMs),
		LotID:   lotID,
	}
}

// RecordCompletion stores the lot's completion timestamp for panel p so
// the next downstream station can compute its own delta. Unknown panels
// have no completion key and are ignored.
func (lt *LotTransitionTracker) RecordCompletion(lotID string, p Panel, end time.Time) {
	key, ok := completionKeys[p]
	if !ok || lotID == "" {
		return
	}

	lt.mu.Lock()
	defer lt.mu.Unlock()

	entry, ok := lt.lots[lotID]
	if !ok {
		entry = make(map[string]time.Time)
		lt.lots[lotID] = entry
	}
	entry[key] = end
}
