package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/gorchard/farmhand/internal/domain"
	"github.com/gorchard/farmhand/internal/ports"
)

// Source builds the catalog from the three game data files, keyed by their
// modification times: as long as none of the three files changed, Load
// returns the previously built catalog unchanged.
type Source struct {
	seedsPath  string
	fruitsPath string
	itemsPath  string
	log        *slog.Logger

	mu       sync.Mutex
	cacheKey [3]time.Time
	cached   *domain.Catalog
}

var _ ports.CatalogSource = (*Source)(nil)

func NewSource(seedsPath, fruitsPath, itemsPath string, log *slog.Logger) *Source {
	if log == nil {
		log = slog.Default()
	}
	return &Source{
		seedsPath:  seedsPath,
		fruitsPath: fruitsPath,
		itemsPath:  itemsPath,
		log:        log,
	}
}

func (s *Source) Load(ctx context.Context) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := s.stampKey()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil && key == s.cacheKey {
		return s.cached, nil
	}

	cat := s.build()
	s.cached = cat
	s.cacheKey = key
	s.log.Info("catalog rebuilt",
		"seeds", len(cat.SeedPrices), "fruits", len(cat.Fruits),
		"items", len(cat.ItemNames), "max_level", cat.MaxLevel())
	return cat, nil
}

func (s *Source) stampKey() ([3]time.Time, error) {
	var key [3]time.Time
	for i, path := range []string{s.seedsPath, s.fruitsPath, s.itemsPath} {
		info, err := os.Stat(path)
		if err != nil {
			return key, fmt.Errorf("stat catalog source: %w", err)
		}
		key[i] = info.ModTime()
	}
	return key, nil
}

// build parses all three sources independently; a failure in one source
// degrades that source's contribution to empty.
func (s *Source) build() *domain.Catalog {
	cat := domain.EmptyCatalog()

	var seeds seedsFile
	if err := decodeFile(s.seedsPath, &seeds); err != nil {
		s.log.Warn("seed source unusable, continuing without it", "path", s.seedsPath, "error", err)
	}
	for _, seed := range seeds.Seeds {
		cat.SeedPrices[seed.ID] = seed.Price
		if seed.Name != "" {
			cat.ItemNames[seed.ID] = seed.Name
		}
	}

	var fruits fruitsFile
	if err := decodeFile(s.fruitsPath, &fruits); err != nil {
		s.log.Warn("fruit source unusable, continuing without it", "path", s.fruitsPath, "error", err)
	}
	for _, fruit := range fruits.Fruits {
		cat.Fruits[fruit.ID] = domain.FruitInfo{
			Name:   fruit.Name,
			Yield:  fruit.Yield,
			SeedID: fruit.SeedID,
		}
	}

	var items itemsFile
	if err := decodeFile(s.itemsPath, &items); err != nil {
		s.log.Warn("item source unusable, continuing without it", "path", s.itemsPath, "error", err)
	}
	cat.CurrencyID = items.CurrencyID
	for _, item := range items.Items {
		cat.ItemNames[item.ID] = item.Name
	}
	cat.LevelStarts = levelTable(items.Levels)

	return cat
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, v)
}

// levelTable lays the sparse level entries into a dense slice indexed by
// level, holes marked LevelUnset.
func levelTable(entries []levelEntry) []int64 {
	maxLevel := 0
	for _, e := range entries {
		if e.Level > maxLevel {
			maxLevel = e.Level
		}
	}
	if maxLevel < 1 {
		return nil
	}
	starts := make([]int64, maxLevel+1)
	for i := range starts {
		starts[i] = domain.LevelUnset
	}
	for _, e := range entries {
		if e.Level >= 1 {
			starts[e.Level] = e.Start
		}
	}
	return starts
}
