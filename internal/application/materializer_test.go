package application

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gorchard/farmhand/internal/domain"
	"github.com/gorchard/farmhand/internal/ports/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		CurrencyID: 1001,
		SeedPrices: map[int]int64{2001: 10, 2002: 25},
		Fruits: map[int]domain.FruitInfo{
			3001: {Name: "carrot", Yield: 8, SeedID: 2001},
			3002: {Name: "radish", Yield: 6, SeedID: 2002},
			3003: {Name: "pumpkin", Yield: 3, SeedID: 2099},
		},
		ItemNames: map[int]string{
			1001: "gold",
			2001: "carrot seed",
			9001: "watering can",
		},
		// Level 1 starts at 0 exp, level 5 at 900. Index 0 is unused.
		LevelStarts: []int64{domain.LevelUnset, 0, 100, 250, 500, 900},
	}
}

func materializerWith(t *testing.T, cat *domain.Catalog) *Materializer {
	t.Helper()
	source := mocks.NewMockCatalogSource(t)
	source.EXPECT().Load(mock.Anything).Return(cat, nil).Maybe()
	return NewMaterializer(source, discardLogger())
}

func TestLevelProgressInsideReportedBracket(t *testing.T) {
	starts := []int64{domain.LevelUnset, 0, 100, 250, 500, 900}

	got := levelProgress(starts, 2, 180)
	require.NotNil(t, got)
	assert.Equal(t, int64(80), got.Current)
	assert.Equal(t, int64(150), got.Needed)
}

func TestLevelProgressRecoversLaggingLevel(t *testing.T) {
	starts := []int64{domain.LevelUnset, 0, 100, 250, 500, 900}

	// Reported level 3 but the experience already crossed into level 4's
	// bracket: the table wins over the reported value.
	got := levelProgress(starts, 3, 520)
	require.NotNil(t, got)
	assert.Equal(t, int64(20), got.Current)
	assert.Equal(t, int64(400), got.Needed)

	// The reported level can also run ahead of the experience.
	got = levelProgress(starts, 4, 120)
	require.NotNil(t, got)
	assert.Equal(t, int64(20), got.Current)
	assert.Equal(t, int64(150), got.Needed)
}

func TestLevelProgressClampsOutOfRangeLevel(t *testing.T) {
	starts := []int64{domain.LevelUnset, 0, 100, 250, 500, 900}

	got := levelProgress(starts, 99, 260)
	require.NotNil(t, got)
	assert.Equal(t, int64(10), got.Current)
	assert.Equal(t, int64(250), got.Needed)

	got = levelProgress(starts, -7, 40)
	require.NotNil(t, got)
	assert.Equal(t, int64(40), got.Current)
	assert.Equal(t, int64(100), got.Needed)
}

func TestLevelProgressUnavailable(t *testing.T) {
	starts := []int64{domain.LevelUnset, 0, 100, 250, 500, 900}

	assert.Nil(t, levelProgress(starts, 2, -5), "negative experience")
	assert.Nil(t, levelProgress(nil, 2, 100), "empty table")
	assert.Nil(t, levelProgress([]int64{domain.LevelUnset, 0}, 1, 50), "single-level table has no bracket")
	assert.Nil(t, levelProgress(starts, 5, 5000), "top level has no next threshold")

	// A hole on either side of the bracket makes the span indeterminate.
	holes := []int64{domain.LevelUnset, 0, domain.LevelUnset, 250, 500}
	got := levelProgress(holes, 2, 120)
	assert.Nil(t, got)
}

func TestLevelProgressSkipsHolesInSearch(t *testing.T) {
	starts := []int64{domain.LevelUnset, 0, domain.LevelUnset, 250, 500, 900}

	// Reported level is wrong and the search lands next to a hole: the
	// probe slides down to the nearest set threshold.
	got := levelProgress(starts, 1, 300)
	require.NotNil(t, got)
	assert.Equal(t, int64(50), got.Current)
	assert.Equal(t, int64(250), got.Needed)
}

func TestLevelProgressLoadFailureReturnsNil(t *testing.T) {
	source := mocks.NewMockCatalogSource(t)
	source.EXPECT().Load(mock.Anything).Return(nil, assert.AnError)
	m := NewMaterializer(source, discardLogger())

	assert.Nil(t, m.LevelProgress(2, 180))
}

func TestBagViewResolutionPriority(t *testing.T) {
	m := materializerWith(t, testCatalog())

	entries, err := m.BagView(context.Background(), []domain.RawItem{
		{ID: 9001, Count: 1},   // generic named item
		{ID: 3001, Count: 12},  // fruit, price derived from seed
		{ID: 2001, Count: 4},   // seed
		{ID: 1001, Count: 500}, // currency
		{ID: 7777, Count: 2},   // unknown item, placeholder name
	})
	require.NoError(t, err)
	require.Len(t, entries, 5)

	// Display order: currency, seeds, fruits, then items by id.
	assert.Equal(t, domain.KindCurrency, entries[0].Kind)
	assert.Equal(t, "gold", entries[0].Name)
	assert.Nil(t, entries[0].UnitPrice)

	assert.Equal(t, domain.KindSeed, entries[1].Kind)
	assert.Equal(t, "carrot seed", entries[1].Name)
	require.NotNil(t, entries[1].UnitPrice)
	assert.Equal(t, 10.0, *entries[1].UnitPrice)

	assert.Equal(t, domain.KindFruit, entries[2].Kind)
	assert.Equal(t, "carrot", entries[2].Name)
	require.NotNil(t, entries[2].UnitPrice)
	assert.Equal(t, 1.25, *entries[2].UnitPrice)

	assert.Equal(t, domain.KindItem, entries[3].Kind)
	assert.Equal(t, 7777, entries[3].ID)
	assert.Equal(t, "item #7777", entries[3].Name)

	assert.Equal(t, domain.KindItem, entries[4].Kind)
	assert.Equal(t, "watering can", entries[4].Name)
}

func TestBagViewFruitPriceRounding(t *testing.T) {
	m := materializerWith(t, testCatalog())

	entries, err := m.BagView(context.Background(), []domain.RawItem{{ID: 3002, Count: 1}})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].UnitPrice)
	assert.Equal(t, 4.1667, *entries[0].UnitPrice, "25/6 rounded to four decimals")
}

func TestBagViewFruitWithoutSeedPriceHasNoPrice(t *testing.T) {
	m := materializerWith(t, testCatalog())

	entries, err := m.BagView(context.Background(), []domain.RawItem{{ID: 3003, Count: 1}})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.KindFruit, entries[0].Kind)
	assert.Nil(t, entries[0].UnitPrice)
}

func TestBagViewGroupsEqualLines(t *testing.T) {
	m := materializerWith(t, testCatalog())

	entries, err := m.BagView(context.Background(), []domain.RawItem{
		{ID: 2001, Count: 4},
		{ID: 2001, Count: 6},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(10), entries[0].Count)
}

func TestBagViewPropagatesCatalogError(t *testing.T) {
	source := mocks.NewMockCatalogSource(t)
	source.EXPECT().Load(mock.Anything).Return(nil, assert.AnError)
	m := NewMaterializer(source, discardLogger())

	_, err := m.BagView(context.Background(), []domain.RawItem{{ID: 1, Count: 1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestFarmViewDerivation(t *testing.T) {
	m := materializerWith(t, testCatalog())
	now := time.Unix(1700000000, 0)

	plots := []domain.RawPlot{
		{
			ID:       2,
			Unlocked: true,
			CropName: "carrot",
			Phases: []domain.PhaseRecord{
				{Phase: domain.PhaseSeed, StartAt: now.Add(-3 * time.Minute)},
				{Phase: domain.PhaseBudding, StartAt: now.Add(-30 * time.Second)},
				{Phase: domain.PhaseMature, StartAt: now.Add(90 * time.Second)},
			},
			Dryness: 1,
		},
		{ID: 1, Unlocked: true}, // unlocked, nothing planted
		{ID: 3, Unlocked: false},
		{
			ID:       4,
			Unlocked: true,
			CropName: "radish",
			Phases: []domain.PhaseRecord{
				{Phase: domain.PhaseSeed, StartAt: now.Add(-time.Hour)},
				{Phase: domain.PhaseMature, StartAt: now.Add(-time.Minute)},
			},
			WeedOwner: "raccoon",
			PestAt:    now.Add(time.Hour), // scheduled in the future, not yet a hazard
		},
	}

	views := m.FarmView(plots, now)
	require.Len(t, views, 4)
	for i, id := range []int{1, 2, 3, 4} {
		assert.Equal(t, id, views[i].ID, "sorted by plot id")
	}

	empty := views[0]
	assert.True(t, empty.Unlocked)
	assert.Empty(t, empty.Crop)
	assert.Nil(t, empty.SecondsToMature)

	growing := views[1]
	assert.Equal(t, domain.PhaseBudding, growing.Phase)
	assert.Equal(t, "budding", growing.PhaseLabel)
	require.NotNil(t, growing.SecondsToMature)
	assert.Equal(t, int64(90), *growing.SecondsToMature)
	assert.True(t, growing.NeedsWater)
	assert.False(t, growing.NeedsWeeding)

	locked := views[2]
	assert.False(t, locked.Unlocked)
	assert.Empty(t, locked.Crop)

	mature := views[3]
	assert.Equal(t, domain.PhaseMature, mature.Phase)
	require.NotNil(t, mature.SecondsToMature)
	assert.Equal(t, int64(0), *mature.SecondsToMature, "past maturity clamps to zero")
	assert.True(t, mature.NeedsWeeding)
	assert.False(t, mature.NeedsPestControl, "future timestamps do not count")
}
