package catalog

// TOML schemas for the three game data sources. Parsing is tolerant at the
// file level: a file that fails to decode contributes nothing instead of
// aborting the build.

type seedsFile struct {
	Seeds []seedEntry `toml:"seeds"`
}

type seedEntry struct {
	ID    int    `toml:"id"`
	Name  string `toml:"name"`
	Price int64  `toml:"price"`
}

type fruitsFile struct {
	Fruits []fruitEntry `toml:"fruits"`
}

type fruitEntry struct {
	ID     int    `toml:"id"`
	Name   string `toml:"name"`
	Yield  int    `toml:"yield"`
	SeedID int    `toml:"seed_id"`
}

type itemsFile struct {
	CurrencyID int          `toml:"currency_id"`
	Items      []itemEntry  `toml:"items"`
	Levels     []levelEntry `toml:"levels"`
}

type itemEntry struct {
	ID   int    `toml:"id"`
	Name string `toml:"name"`
}

type levelEntry struct {
	Level int   `toml:"level"`
	Start int64 `toml:"start"`
}
