package domain

import "time"

// Growth phases as reported by the game, in order. Phase 7 is maturity.
const (
	PhaseSeed = iota
	PhaseSprout
	PhaseSeedling
	PhaseSmallLeaf
	PhaseBigLeaf
	PhaseBudding
	PhaseFlowering
	PhaseMature
)

var phaseLabels = [8]string{
	"seed", "sprout", "seedling", "small leaf",
	"big leaf", "budding", "flowering", "mature",
}

func PhaseLabel(phase int) string {
	if phase < 0 || phase >= len(phaseLabels) {
		return "unknown"
	}
	return phaseLabels[phase]
}

// PhaseRecord is one entry of a plot's phase history: the phase index and
// the server time at which that phase begins.
type PhaseRecord struct {
	Phase   int
	StartAt time.Time
}

// RawPlot is the untranslated plot state fetched from the session.
type RawPlot struct {
	ID       int
	Unlocked bool
	CropName string
	Phases   []PhaseRecord

	// Hazard inputs. A zero time means "not recorded".
	Dryness   int
	DrySince  time.Time
	WeedOwner string
	WeedAt    time.Time
	PestOwner string
	PestAt    time.Time
}

// FarmPlotView is the UI-ready derivation of a RawPlot. It is recomputed
// wholesale on every refresh tick, never patched in place.
type FarmPlotView struct {
	ID              int    `json:"id"`
	Unlocked        bool   `json:"unlocked"`
	Crop            string `json:"crop,omitempty"`
	Phase           int    `json:"phase"`
	PhaseLabel      string `json:"phase_label,omitempty"`
	SecondsToMature *int64 `json:"seconds_to_mature,omitempty"`

	NeedsWater       bool `json:"needs_water"`
	NeedsWeeding     bool `json:"needs_weeding"`
	NeedsPestControl bool `json:"needs_pest_control"`
}

func (p FarmPlotView) clone() FarmPlotView {
	out := p
	if p.SecondsToMature != nil {
		v := *p.SecondsToMature
		out.SecondsToMature = &v
	}
	return out
}
