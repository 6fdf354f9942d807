package domain

type ItemKind string

const (
	KindCurrency ItemKind = "currency"
	KindSeed     ItemKind = "seed"
	KindFruit    ItemKind = "fruit"
	KindItem     ItemKind = "item"
)

// KindRank orders bag entries for display: currency, seeds, fruits, then
// everything else.
func KindRank(k ItemKind) int {
	switch k {
	case KindCurrency:
		return 0
	case KindSeed:
		return 1
	case KindFruit:
		return 2
	default:
		return 3
	}
}

// RawItem is one untranslated inventory slot fetched from the session.
type RawItem struct {
	ID    int
	Count int64
}

// BagEntry is the resolved, grouped inventory line shown to readers.
// UnitPrice is nil when no price can be resolved for the item.
type BagEntry struct {
	Kind      ItemKind `json:"kind"`
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Count     int64    `json:"count"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
}

func (e BagEntry) clone() BagEntry {
	out := e
	if e.UnitPrice != nil {
		v := *e.UnitPrice
		out.UnitPrice = &v
	}
	return out
}
