package domain

// LevelUnset marks a hole in the level threshold table where the source
// data had no entry for that level.
const LevelUnset int64 = -1

type FruitInfo struct {
	Name   string
	Yield  int
	SeedID int
}

// Catalog is the cached pricing and name lookup table merged from the three
// game data sources. A Catalog value is immutable once published; consumers
// may hold onto it across refreshes.
type Catalog struct {
	CurrencyID int
	SeedPrices map[int]int64
	Fruits     map[int]FruitInfo
	ItemNames  map[int]string

	// LevelStarts[L] is the total experience at which level L begins.
	// Index 0 is unused; entries equal to LevelUnset are holes.
	LevelStarts []int64
}

func EmptyCatalog() *Catalog {
	return &Catalog{
		SeedPrices: map[int]int64{},
		Fruits:     map[int]FruitInfo{},
		ItemNames:  map[int]string{},
	}
}

// MaxLevel is the highest level indexable in LevelStarts, or 0 when the
// table is degenerate.
func (c *Catalog) MaxLevel() int {
	if len(c.LevelStarts) < 2 {
		return 0
	}
	return len(c.LevelStarts) - 1
}
