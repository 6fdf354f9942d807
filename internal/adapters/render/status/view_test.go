package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gorchard/farmhand/internal/domain"
)

func TestRenderStoppedSnapshot(t *testing.T) {
	out := Render(domain.StatusSnapshot{}, RenderOptions{})

	assert.Contains(t, out, "state: stopped")
	assert.Contains(t, out, "No session data available.")
}

func TestRenderRunningSnapshot(t *testing.T) {
	started := time.Unix(1700000000, 0)
	now := started.Add(90 * time.Second)
	secsReady := int64(0)
	secsLeft := int64(135)
	price := 1.25

	snap := domain.StatusSnapshot{
		Running:   true,
		Connected: true,
		Platform:  "sim",
		StartedAt: &started,
		User: &domain.UserInfo{
			Nickname: "Sim Farmer",
			Level:    2,
			Exp:      180,
			Money:    521,
			Progress: &domain.LevelProgress{Current: 80, Needed: 150},
		},
		Farm: []domain.FarmPlotView{
			{ID: 1, Unlocked: true, Crop: "carrot", Phase: domain.PhaseMature, PhaseLabel: "mature", SecondsToMature: &secsReady},
			{ID: 2, Unlocked: true, Crop: "radish", Phase: domain.PhaseBudding, PhaseLabel: "budding", SecondsToMature: &secsLeft, NeedsWater: true, NeedsWeeding: true},
			{ID: 3, Unlocked: true},
			{ID: 4},
		},
		Bag: []domain.BagEntry{
			{Kind: domain.KindCurrency, ID: 1001, Name: "coins", Count: 500},
			{Kind: domain.KindFruit, ID: 3001, Name: "carrot", Count: 12, UnitPrice: &price},
		},
		Visits: []domain.VisitRecord{
			{Direction: domain.VisitIncoming, CounterpartyName: "Mole", Kind: "water", Message: "watered your crops"},
			{Direction: domain.VisitOutgoing, CounterpartyID: "n-2", Kind: "weed", Message: "pulled weeds"},
		},
	}

	out := Render(snap, RenderOptions{Now: now, VisitLines: 5})

	assert.Contains(t, out, "state: running")
	assert.Contains(t, out, "platform: sim")
	assert.Contains(t, out, "up: 1m30s")

	assert.Contains(t, out, "Sim Farmer (lv 2)")
	assert.Contains(t, out, "80/150 to next level")

	assert.Contains(t, out, "plots: 4")
	assert.Contains(t, out, "#1 carrot: mature (ready)")
	assert.Contains(t, out, "#2 radish: budding (2m15s left)")
	assert.Contains(t, out, "[dry,weeds]")
	assert.Contains(t, out, "#3 empty")
	assert.Contains(t, out, "#4 locked")

	assert.Contains(t, out, "bag: 2 kinds")
	assert.Contains(t, out, "coins x500")
	assert.Contains(t, out, "carrot x12 @1.25")

	assert.Contains(t, out, "recent visits")
	assert.Contains(t, out, "<- Mole water: watered your crops")
	assert.Contains(t, out, "-> n-2 weed: pulled weeds")
}

func TestRenderDisconnectedState(t *testing.T) {
	out := Render(domain.StatusSnapshot{Running: true, LastError: "tcp reset"}, RenderOptions{})

	assert.Contains(t, out, "state: running (disconnected)")
	assert.Contains(t, out, "last error: tcp reset")
}

func TestRenderVisitLineLimit(t *testing.T) {
	visits := make([]domain.VisitRecord, 10)
	for i := range visits {
		visits[i] = domain.VisitRecord{Direction: domain.VisitIncoming, CounterpartyID: "n", Kind: "water", Message: string(rune('a' + i))}
	}

	out := Render(domain.StatusSnapshot{Running: true, Visits: visits}, RenderOptions{VisitLines: 3})

	assert.NotContains(t, out, "water: a")
	assert.Contains(t, out, "water: h")
	assert.Contains(t, out, "water: j")
}

func TestRenderProgressBarBounds(t *testing.T) {
	s := newStyles()
	assert.Equal(t, "", renderProgressBar(50, 0, s))
	assert.Contains(t, renderProgressBar(200, 4, s), "====")
	assert.Contains(t, renderProgressBar(-10, 4, s), "----")
}
