package game

import "sync/atomic"

const (
	ItemLife            = 100
	DefaultDepreciation = 100
)

var nextItemID atomic.Uint64

// Item is a pickable, usable object. Ids are unique for the life of the
// process so two items with identical fields stay distinguishable.
type Item struct {
	ID           uint64   `msgpack:"id"`
	Kind         ItemKind `msgpack:"kind"`
	X            float64  `msgpack:"x"`
	Y            float64  `msgpack:"y"`
	W            float64  `msgpack:"w"`
	H            float64  `msgpack:"h"`
	Life         int      `msgpack:"life"`
	Depreciation int      `msgpack:"depreciation"`
}

// NewItem places a fresh item centred on x, y.
func NewItem(kind ItemKind, x, y, w, h float64, depreciation int) *Item {
	if depreciation <= 0 {
		depreciation = DefaultDepreciation
	}
	return &Item{
		ID:           nextItemID.Add(1),
		Kind:         kind,
		X:            x,
		Y:            y,
		W:            w,
		H:            h,
		Life:         ItemLife,
		Depreciation: depreciation,
	}
}

func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Exhausted reports whether the item has no uses left.
func (i *Item) Exhausted() bool {
	return i.Life <= 0
}

func (i *Item) Materials() Materials {
	return Materials{Images: []string{i.Kind.String()}}
}

// Mark is a permanent decoration left on the map.
type Mark struct {
	Shape     string  `msgpack:"shape"`
	X         float64 `msgpack:"x"`
	Y         float64 `msgpack:"y"`
	W         float64 `msgpack:"w"`
	H         float64 `msgpack:"h"`
	VisibleTo int     `msgpack:"visible_to"`
}

// Everyone is the VisibleTo value of a mark every player can see.
const Everyone = -1

func (m Mark) VisibleFor(player int) bool {
	return m.VisibleTo == Everyone || m.VisibleTo == player
}
