package process

import "strings"

// Panel identifies a production station. Wire names match the historical
// submission payloads.
type Panel string

const (
	PanelMixing       Panel = "mixers"
	PanelBenchRest    Panel = "mesa"
	PanelFermentation Panel = "fermenter"
	PanelBaking       Panel = "ovens"

	// PanelUnknown is stored when a submission carries no panel at all.
	PanelUnknown Panel = "unknown"
)

// panelSequence is the fixed station order a lot moves through.
var panelSequence = []Panel{PanelMixing, PanelBenchRest, PanelFermentation, PanelBaking}

// completionKeys maps each panel to the tracker key holding its last
// completion timestamp.
var completionKeys = map[Panel]string{
	PanelMixing:       "mixerEnd",
	PanelBenchRest:    "mesaEnd",
	PanelFermentation: "fermentEnd",
	PanelBaking:       "ovenEnd",
}

// Valid reports whether p is one of the four known stations.
func (p Panel) Valid() bool {
	_, ok := completionKeys[p]
	return ok
}

// Previous returns the station a lot passes immediately before p. Mixing is
// the head of the line and has no previous station.
func (p Panel) Previous() (Panel, bool) {
	for i, panel := range panelSequence {
		if panel == p && i > 0 {
			return panelSequence[i-1], true
		}
	}
	return "", false
}

// NormalizePanel keeps known panels as-is, maps empty to unknown, and
// passes every other value through untouched so unexpected submissions stay
// queryable.
func NormalizePanel(raw string) Panel {
	p := Panel(strings.TrimSpace(raw))
	if p == "" {
		return PanelUnknown
	}
	return p
}
