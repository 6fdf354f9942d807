package catalog

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	SeedsFileName  = "seeds.toml"
	FruitsFileName = "fruits.toml"
	ItemsFileName  = "items.toml"
)

var defaultSources = map[string]string{
	SeedsFileName: `[[seeds]]
id = 2001
name = "carrot seed"
price = 10

[[seeds]]
id = 2002
name = "radish seed"
price = 25

[[seeds]]
id = 2003
name = "pumpkin seed"
price = 60
`,
	FruitsFileName: `[[fruits]]
id = 3001
name = "carrot"
yield = 8
seed_id = 2001

[[fruits]]
id = 3002
name = "radish"
yield = 6
seed_id = 2002

[[fruits]]
id = 3003
name = "pumpkin"
yield = 3
seed_id = 2003
`,
	ItemsFileName: `currency_id = 1001

[[items]]
id = 1001
name = "coins"

[[items]]
id = 9001
name = "watering can"

[[levels]]
level = 1
start = 0

[[levels]]
level = 2
start = 240

[[levels]]
level = 3
start = 600

[[levels]]
level = 4
start = 1200

[[levels]]
level = 5
start = 2200
`,
}

// EnsureDefaultSources writes the bundled sample data files into dir for
// any source file that does not exist yet, and returns the three paths in
// seeds, fruits, items order.
func EnsureDefaultSources(dir string) (string, string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", "", fmt.Errorf("create data directory: %w", err)
	}
	for name, content := range defaultSources {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return "", "", "", fmt.Errorf("stat data file: %w", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", "", "", fmt.Errorf("write data file: %w", err)
		}
	}
	return filepath.Join(dir, SeedsFileName), filepath.Join(dir, FruitsFileName), filepath.Join(dir, ItemsFileName), nil
}
