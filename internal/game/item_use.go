package game

// itemUse applies an item to the explorer it is used on. The engine lock is
// held.
type itemUse func(e *Engine, target *Explorer)

// itemUses lists every usable kind. Kinds missing from the table cannot be
// used and are never consumed.
var itemUses = map[ItemKind]itemUse{
	ItemCoffee:     useCoffee,
	ItemCrayon:     useCrayon,
	ItemSnowflake:  withEffect(EffectFrozen),
	ItemMushroom:   withEffect(EffectPoisoned),
	ItemApple:      withEffect(EffectFaster),
	ItemLemon:      withEffect(EffectBlinded),
	ItemWatermelon: withEffect(EffectSmaller),
	ItemCat:        useNothing,
	ItemDog:        useNothing,
	ItemSpice:      useNothing,
}

// Usable reports whether items of kind can be used from the bag.
func (k ItemKind) Usable() bool {
	_, ok := itemUses[k]
	return ok
}

// Effect is the timed effect using an item of kind starts, if any.
func (k ItemKind) Effect() EffectKind {
	switch k {
	case ItemSnowflake:
		return EffectFrozen
	case ItemMushroom:
		return EffectPoisoned
	case ItemApple:
		return EffectFaster
	case ItemLemon:
		return EffectBlinded
	case ItemWatermelon:
		return EffectSmaller
	}
	return EffectNone
}

func withEffect(kind EffectKind) itemUse {
	return func(e *Engine, target *Explorer) {
		target.ApplyEffect(kind, e.board.Maze)
	}
}

func useCoffee(e *Engine, target *Explorer) {
	target.ClearEffects(e.board.Maze)
}

// useCrayon leaves a circle everyone can see where the target stands.
func useCrayon(e *Engine, target *Explorer) {
	size := e.board.Maze.Width * MarkSizeRatio
	e.board.AddMark(Mark{
		Shape:     "circle",
		X:         target.X,
		Y:         target.Y,
		W:         size,
		H:         size,
		VisibleTo: Everyone,
	})
}

func useNothing(*Engine, *Explorer) {}
