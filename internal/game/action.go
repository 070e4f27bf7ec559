package game

import "fmt"

// ActionKind is the closed set of intents a player can send.
type ActionKind int

const (
	ActionQuit ActionKind = iota
	ActionTurn
	ActionUnturn
	ActionUse
	ActionPick
	ActionPlace
	ActionChat
)

func (k ActionKind) String() string {
	switch k {
	case ActionQuit:
		return "quit"
	case ActionTurn:
		return "turn"
	case ActionUnturn:
		return "unturn"
	case ActionUse:
		return "use"
	case ActionPick:
		return "pick"
	case ActionPlace:
		return "place"
	case ActionChat:
		return "chat"
	}
	return "unknown"
}

// Action is one player intent. Which fields matter depends on Kind:
//
//	turn, unturn  Value is a Direction
//	use           Value is a bag slot
//	pick          Item is the item id, Args holds its row and column
//	chat          Text
type Action struct {
	Kind    ActionKind `msgpack:"kind"`
	Applier int        `msgpack:"applier"`
	Target  int        `msgpack:"target"`
	Value   int        `msgpack:"value"`
	Item    uint64     `msgpack:"item,omitempty"`
	Args    []int      `msgpack:"args,omitempty"`
	Text    string     `msgpack:"text,omitempty"`
}

func (a Action) String() string {
	return fmt.Sprintf("%s:%d->%d", a.Kind, a.Applier, a.Target)
}

func Turn(player int, d Direction) Action {
	return Action{Kind: ActionTurn, Applier: player, Target: player, Value: int(d)}
}

func Unturn(player int, d Direction) Action {
	return Action{Kind: ActionUnturn, Applier: player, Target: player, Value: int(d)}
}

func Use(applier, target, slot int) Action {
	return Action{Kind: ActionUse, Applier: applier, Target: target, Value: slot}
}

func Pick(player int, item *Item, row, col int) Action {
	return Action{Kind: ActionPick, Applier: player, Target: player, Item: item.ID, Args: []int{row, col}}
}

func Chat(player int, text string) Action {
	return Action{Kind: ActionChat, Applier: player, Target: player, Text: text}
}

func Quit(player int) Action {
	return Action{Kind: ActionQuit, Applier: player, Target: player}
}

// Event is a notice shown to players for a short while, such as one player
// using an item on another.
type Event struct {
	Action    Action   `msgpack:"action"`
	ItemKind  ItemKind `msgpack:"item_kind,omitempty"`
	Remaining float64  `msgpack:"remaining"`
}
