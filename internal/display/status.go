package display

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-maze/internal/game"
)

// EffectName is the display name of an effect, e.g. "Frozen".
func EffectName(k game.EffectKind) string {
	return Title(strings.TrimPrefix(k.String(), "effect"))
}

// ItemName is the display name of an item kind.
func ItemName(k game.ItemKind) string {
	return Title(k.String())
}

// StatusLines describes player id's explorer for the side pane: bag slots,
// crystals held, active effects and current notices. Lines are wrapped to
// width.
func StatusLines(snap *game.Snapshot, id, width int) []string {
	x := snap.Explorer(id)
	if x == nil {
		return []string{"Waiting for game state..."}
	}

	var out []string
	add := func(text string) {
		out = append(out, Lines(text, width)...)
	}

	add(fmt.Sprintf("%s  (%.0f, %.0f)", PlayerName(id), x.X, x.Y))

	var bag []string
	for i, it := range x.Bag.Slots {
		if it != nil {
			bag = append(bag, fmt.Sprintf("[%d] %s", i+1, ItemName(it.Kind)))
		}
	}
	if len(bag) == 0 {
		add("Bag: empty")
	} else {
		add("Bag: " + strings.Join(bag, " "))
	}

	crystals := make([]string, 0, len(x.Crystals))
	for _, k := range x.Crystals {
		crystals = append(crystals, ItemName(k))
	}
	add(fmt.Sprintf("Crystals %d/%d: %s", len(x.Crystals), game.CrystalsToWin, strings.Join(crystals, ", ")))

	for _, fx := range x.Effects {
		add(fmt.Sprintf("%s %.1fs", EffectName(fx.Kind), fx.Remaining))
	}

	for _, ev := range snap.Events {
		text, err := EventText(ev, id)
		if err != nil || text == "" {
			continue
		}
		add(text)
	}

	if snap.Mode == game.ModeGameOver {
		add(ResultText(snap, id))
	}

	return out
}

// ResultText announces the outcome of a finished game to viewer.
func ResultText(snap *game.Snapshot, viewer int) string {
	switch snap.Winner {
	case game.NoWinner:
		return "The game ended with no winner."
	case viewer:
		return "You found the way out!"
	default:
		return fmt.Sprintf("%s found the way out.", PlayerName(snap.Winner))
	}
}
