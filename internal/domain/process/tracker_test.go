package process_test

import (
	"testing"
	"time"

	"github.com/Gsiblesz/Centro-Caracas/internal/domain/process"
	"github.com/stretchr/testify/require"
)

func TestTracker_DeltaBetweenSequentialStations(t *testing.T) {
	tracker := process.NewLotTransitionTracker()
	t1 := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	t2 := t1.Add(25 * time.Minute)

	tracker.RecordCompletion("L1", process.PanelMixing, t1)

	tr := tracker.Transition("L1", process.PanelBenchRest, t2)
	require.NotNil(t, tr)
	require.Equal(t, "mixer", tr.From)
	require.Equal(t, process.PanelBenchRest, tr.To)
	require.Equal(t, t1.UTC().Format(time.RFC3339Nano), tr.FromEnd)
	require.Equal(t, int64(25*60*1000), tr.DeltaMs)
	require.Equal(t, "00:25:00", tr.Delta)
	require.Equal(t, "L1", tr.LotID)
}

func TestTracker_UnseenLotHasNoTransition(t *testing.T) {
	tracker := process.NewLotTransitionTracker()
	tracker.RecordCompletion("L1", process.PanelMixing, time.Now())

	require.Nil(t, tracker.Transition("L2", process.PanelFermentation, time.Now()))
}

func TestTracker_MixingHasNoPreviousStation(t *testing.T) {
	tracker := process.NewLotTransitionTracker()
	tracker.RecordCompletion("L1", process.PanelMixing, time.Now())

	require.Nil(t, tracker.Transition("L1", process.PanelMixing, time.Now()))
}

func TestTracker_SkippedStationHasNoTransition(t *testing.T) {
	tracker := process.NewLotTransitionTracker()
	tracker.RecordCompletion("L1", process.PanelMixing, time.Now())

	// Fermentation's previous station is the bench rest, which never
	// completed this lot.
	require.Nil(t, tracker.Transition("L1", process.PanelFermentation, time.Now()))
}

func TestTracker_NegativeDeltaSurfaced(t *testing.T) {
	tracker := process.NewLotTransitionTracker()
	end := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	start := end.Add(-10 * time.Minute) // clock or data-entry anomaly

	tracker.RecordCompletion("L1", process.PanelFermentation, end)

	tr := tracker.Transition("L1", process.PanelBaking, start)
	require.NotNil(t, tr)
	require.Equal(t, int64(-10*60*1000), tr.DeltaMs, "negative deltas are surfaced, not clamped")
	require.Equal(t, "00:00:00", tr.Delta, "formatted delta floors at zero")
}

func TestTracker_CompletionOverwrites(t *testing.T) {
	tracker := process.NewLotTransitionTracker()
	first := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	tracker.RecordCompletion("L1", process.PanelMixing, first)
	tracker.RecordCompletion("L1", process.PanelMixing, second)

	tr := tracker.Transition("L1", process.PanelBenchRest, second.Add(5*time.Minute))
	require.NotNil(t, tr)
	require.Equal(t, int64(5*60*1000), tr.DeltaMs)
}

func TestTracker_FullLineSequence(t *testing.T) {
	tracker := process.NewLotTransitionTracker()
	base := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

	tracker.RecordCompletion("L1", process.PanelMixing, base)
	tracker.RecordCompletion("L1", process.PanelBenchRest, base.Add(time.Hour))
	tracker.RecordCompletion("L1", process.PanelFermentation, base.Add(3*time.Hour))

	tr := tracker.Transition("L1", process.PanelBaking, base.Add(3*time.Hour+30*time.Minute))
	require.NotNil(t, tr)
	require.Equal(t, "ferment", tr.From)
	require.Equal(t, int64(30*60*1000), tr.DeltaMs)
}
