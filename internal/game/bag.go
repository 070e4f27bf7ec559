package game

// DefaultBagCapacity is the number of slots a new explorer carries.
const DefaultBagCapacity = 10

// Bag is a fixed number of item slots. Empty slots are nil.
type Bag struct {
	Slots []*Item `msgpack:"slots"`
}

func NewBag(capacity int) Bag {
	return Bag{Slots: make([]*Item, capacity)}
}

// Add puts item in the first empty slot. It reports false when the bag is
// full.
func (b *Bag) Add(item *Item) bool {
	for i, s := range b.Slots {
		if s == nil {
			b.Slots[i] = item
			return true
		}
	}
	return false
}

// Get returns the item in slot i, or nil when i is empty or out of range.
func (b *Bag) Get(i int) *Item {
	if i < 0 || i >= len(b.Slots) {
		return nil
	}
	return b.Slots[i]
}

// Remove empties slot i and returns what was there.
func (b *Bag) Remove(i int) *Item {
	item := b.Get(i)
	if item != nil {
		b.Slots[i] = nil
	}
	return item
}

// Swap exchanges two slots, empty or not.
func (b *Bag) Swap(i, j int) bool {
	if i < 0 || j < 0 || i >= len(b.Slots) || j >= len(b.Slots) {
		return false
	}
	b.Slots[i], b.Slots[j] = b.Slots[j], b.Slots[i]
	return true
}

// Expand adds n empty slots.
func (b *Bag) Expand(n int) {
	if n > 0 {
		b.Slots = append(b.Slots, make([]*Item, n)...)
	}
}

func (b *Bag) Capacity() int {
	return len(b.Slots)
}

// Count is the number of occupied slots.
func (b *Bag) Count() int {
	n := 0
	for _, s := range b.Slots {
		if s != nil {
			n++
		}
	}
	return n
}

func (b Bag) clone() Bag {
	c := Bag{Slots: make([]*Item, len(b.Slots))}
	for i, s := range b.Slots {
		c.Slots[i] = s.Clone()
	}
	return c
}
