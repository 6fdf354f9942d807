package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/gorchard/farmhand/internal/domain"
	"github.com/gorchard/farmhand/internal/ports"
)

// Materializer turns raw session data into the derived views held on the
// status snapshot.
type Materializer struct {
	catalog ports.CatalogSource
	log     *slog.Logger
}

func NewMaterializer(catalog ports.CatalogSource, log *slog.Logger) *Materializer {
	if log == nil {
		log = slog.Default()
	}
	return &Materializer{catalog: catalog, log: log}
}

// LevelProgress recomputes in-level progress from total experience. The
// reported level may lag one tick behind the experience value, so the
// threshold table is the source of truth: if totalExp falls outside the
// reported level's bracket, the bracket is recovered by binary search.
func (m *Materializer) LevelProgress(level int, totalExp int64) *domain.LevelProgress {
	cat, err := m.catalog.Load(context.Background())
	if err != nil {
		m.log.Debug("level progress unavailable", "error", err)
		return nil
	}
	return levelProgress(cat.LevelStarts, level, totalExp)
}

func levelProgress(starts []int64, level int, totalExp int64) *domain.LevelProgress {
	maxLevel := len(starts) - 1
	if maxLevel < 1 || totalExp < 0 {
		return nil
	}
	if level < 1 {
		level = 1
	}
	if level > maxLevel {
		level = maxLevel
	}

	l := level
	if !inBracket(starts, l, totalExp) {
		l = searchLevel(starts, maxLevel, totalExp)
		if l < 1 {
			return nil
		}
		if l > maxLevel {
			l = maxLevel
		}
	}

	if l+1 > maxLevel || starts[l] == domain.LevelUnset || starts[l+1] == domain.LevelUnset {
		return nil
	}
	needed := starts[l+1] - starts[l]
	if needed <= 0 {
		return nil
	}
	current := totalExp - starts[l]
	if current < 0 {
		current = 0
	}
	if current > needed {
		current = needed
	}
	return &domain.LevelProgress{Current: current, Needed: needed}
}

func inBracket(starts []int64, l int, totalExp int64) bool {
	if l+1 >= len(starts) {
		return false
	}
	lo, hi := starts[l], starts[l+1]
	if lo == domain.LevelUnset || hi == domain.LevelUnset {
		return false
	}
	return totalExp >= lo && totalExp < hi
}

// searchLevel finds the highest level whose threshold is <= totalExp.
// Unset entries are indeterminate: the probe slides down to the nearest set
// entry instead of treating the hole as a valid threshold.
func searchLevel(starts []int64, maxLevel int, totalExp int64) int {
	best := -1
	lo, hi := 1, maxLevel
	for lo <= hi {
		mid := (lo + hi) / 2
		probe := mid
		for probe >= lo && starts[probe] == domain.LevelUnset {
			probe--
		}
		if probe < lo {
			lo = mid + 1
			continue
		}
		if starts[probe] <= totalExp {
			best = probe
			lo = mid + 1
		} else {
			hi = probe - 1
		}
	}
	return best
}

// FarmView derives the per-plot view, wholesale, stably sorted by plot id.
func (m *Materializer) FarmView(plots []domain.RawPlot, now time.Time) []domain.FarmPlotView {
	views := make([]domain.FarmPlotView, 0, len(plots))
	for _, plot := range plots {
		views = append(views, plotView(plot, now))
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}

func plotView(plot domain.RawPlot, now time.Time) domain.FarmPlotView {
	view := domain.FarmPlotView{ID: plot.ID, Unlocked: plot.Unlocked}
	if !plot.Unlocked || plot.CropName == "" {
		return view
	}

	view.Crop = plot.CropName
	view.Phase = currentPhase(plot.Phases, now)
	view.PhaseLabel = domain.PhaseLabel(view.Phase)
	if matureAt, ok := phaseStart(plot.Phases, domain.PhaseMature); ok {
		secs := int64(matureAt.Sub(now) / time.Second)
		if secs < 0 {
			secs = 0
		}
		view.SecondsToMature = &secs
	}

	view.NeedsWater = plot.Dryness > 0 || elapsed(plot.DrySince, now)
	view.NeedsWeeding = plot.WeedOwner != "" || elapsed(plot.WeedAt, now)
	view.NeedsPestControl = plot.PestOwner != "" || elapsed(plot.PestAt, now)
	return view
}

func elapsed(t time.Time, now time.Time) bool {
	return !t.IsZero() && !t.After(now)
}

func currentPhase(phases []domain.PhaseRecord, now time.Time) int {
	current := domain.PhaseSeed
	for _, rec := range phases {
		if !rec.StartAt.After(now) && rec.Phase > current {
			current = rec.Phase
		}
	}
	return current
}

func phaseStart(phases []domain.PhaseRecord, phase int) (time.Time, bool) {
	for _, rec := range phases {
		if rec.Phase == phase {
			return rec.StartAt, true
		}
	}
	return time.Time{}, false
}

// BagView resolves raw inventory slots against the catalog, groups equal
// lines and orders them for display.
func (m *Materializer) BagView(ctx context.Context, items []domain.RawItem) ([]domain.BagEntry, error) {
	cat, err := m.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	type groupKey struct {
		kind  domain.ItemKind
		id    int
		price float64
		prOK  bool
	}
	grouped := make(map[groupKey]*domain.BagEntry)
	order := make([]groupKey, 0, len(items))

	for _, item := range items {
		entry := resolveItem(cat, item)
		key := groupKey{kind: entry.Kind, id: entry.ID}
		if entry.UnitPrice != nil {
			key.price, key.prOK = *entry.UnitPrice, true
		}
		if existing, ok := grouped[key]; ok {
			existing.Count += entry.Count
			continue
		}
		grouped[key] = &entry
		order = append(order, key)
	}

	out := make([]domain.BagEntry, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := domain.KindRank(out[i].Kind), domain.KindRank(out[j].Kind)
		if ri != rj {
			return ri < rj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Resolution priority: currency, then seed, then fruit, then generic item.
// An id present in both the seed and fruit tables is a seed.
func resolveItem(cat *domain.Catalog, item domain.RawItem) domain.BagEntry {
	entry := domain.BagEntry{ID: item.ID, Count: item.Count}

	switch {
	case item.ID == cat.CurrencyID && cat.CurrencyID != 0:
		entry.Kind = domain.KindCurrency
		entry.Name = cat.ItemNames[item.ID]
		if entry.Name == "" {
			entry.Name = "coins"
		}
	case hasSeed(cat, item.ID):
		entry.Kind = domain.KindSeed
		price := float64(cat.SeedPrices[item.ID])
		entry.UnitPrice = &price
		entry.Name = cat.ItemNames[item.ID]
	case hasFruit(cat, item.ID):
		fruit := cat.Fruits[item.ID]
		entry.Kind = domain.KindFruit
		entry.Name = fruit.Name
		if seedPrice, ok := cat.SeedPrices[fruit.SeedID]; ok && fruit.Yield > 0 {
			price := roundTo4(float64(seedPrice) / float64(fruit.Yield))
			entry.UnitPrice = &price
		}
	default:
		entry.Kind = domain.KindItem
		entry.Name = cat.ItemNames[item.ID]
	}

	if entry.Name == "" {
		entry.Name = fmt.Sprintf("item #%d", item.ID)
	}
	return entry
}

func hasSeed(cat *domain.Catalog, id int) bool {
	_, ok := cat.SeedPrices[id]
	return ok
}

func hasFruit(cat *domain.Catalog, id int) bool {
	_, ok := cat.Fruits[id]
	return ok
}

func roundTo4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
