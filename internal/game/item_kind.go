package game

import (
	"fmt"
	"strings"
)

// ItemKind is the closed set of things that can lie on the map.
type ItemKind int

const (
	ItemUnknown ItemKind = iota
	ItemLemon
	ItemWatermelon
	ItemApple
	ItemSnowflake
	ItemCoffee
	ItemMushroom
	ItemCrayon
	ItemCat
	ItemDog
	ItemSpice
	ItemCrystalScarlet
	ItemCrystalGreen
	ItemCrystalBlue
	ItemCrystalYellow
	ItemDestination
)

var itemKindNames = map[ItemKind]string{
	ItemLemon:          "lemon",
	ItemWatermelon:     "watermelon",
	ItemApple:          "apple",
	ItemSnowflake:      "snowflake",
	ItemCoffee:         "coffee",
	ItemMushroom:       "mushroom",
	ItemCrayon:         "crayon",
	ItemCat:            "cat",
	ItemDog:            "dog",
	ItemSpice:          "spice",
	ItemCrystalScarlet: "crystalScarlet",
	ItemCrystalGreen:   "crystalGreen",
	ItemCrystalBlue:    "crystalBlue",
	ItemCrystalYellow:  "crystalYellow",
	ItemDestination:    "destination",
}

func (k ItemKind) String() string {
	if name, ok := itemKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseItemKind is case insensitive.
func ParseItemKind(s string) (ItemKind, error) {
	for k, name := range itemKindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return ItemUnknown, fmt.Errorf("unknown item kind %q", s)
}

// MarshalText writes ItemUnknown as an empty string, which events that
// carry no item use.
func (k ItemKind) MarshalText() ([]byte, error) {
	if k == ItemUnknown {
		return []byte{}, nil
	}
	if _, ok := itemKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown item kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *ItemKind) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = ItemUnknown
		return nil
	}
	kind, err := ParseItemKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

func (k ItemKind) IsCrystal() bool {
	switch k {
	case ItemCrystalScarlet, ItemCrystalGreen, ItemCrystalBlue, ItemCrystalYellow:
		return true
	}
	return false
}

// Description is the flavour text shown when an item is picked or used.
func (k ItemKind) Description() string {
	switch k {
	case ItemLemon:
		return "A sour lemon. Your eyes water."
	case ItemWatermelon:
		return "A big watermelon. It somehow makes you smaller."
	case ItemApple:
		return "A red apple. Run faster!"
	case ItemSnowflake:
		return "A large snowflake. Frozen!"
	case ItemCoffee:
		return "A hot coffee. Shakes off every effect."
	case ItemMushroom:
		return "A poisonous mushroom. Dizzy..."
	case ItemCrayon:
		return "A crayon. Mark the way back."
	case ItemCat:
		return "A kitten. Meow."
	case ItemDog:
		return "A puppy with a keen nose."
	case ItemSpice:
		return "A hot pepper."
	case ItemCrystalScarlet:
		return "Scarlet flame, a ruby."
	case ItemCrystalGreen:
		return "Jade, an emerald."
	case ItemCrystalBlue:
		return "Starlight, a sapphire."
	case ItemCrystalYellow:
		return "Autumn glow, a topaz."
	case ItemDestination:
		return "The way out. Bring three crystals."
	}
	return ""
}
