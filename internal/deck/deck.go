// internal/deck/deck.go
package deck

import (
	"fmt"
	"math/rand"
	"strings"
)

// Build expands the card catalog into one Card per configured copy, in
// catalog declaration order. IDs are stable across runs and unique within the
// deck, e.g. "p-red-2", "w-red-yellow-1", "m-5-2", "a-pass-go-7", "r-any-3".
// Moves reference cards by these IDs, so they must never depend on position.
func Build() []Card {
	cards := make([]Card, 0, Size())
	for _, e := range catalog {
		for i := 1; i <= e.count; i++ {
			c := Card{
				Kind:   e.kind,
				Value:  e.value,
				Color:  e.color,
				Action: e.action,
			}
			if len(e.colors) > 0 {
				c.Colors = append([]Color(nil), e.colors...)
			}
			c.ID = fmt.Sprintf("%s-%d", e.slug(), i)
			cards = append(cards, c)
		}
	}
	return cards
}

// Size returns the total number of cards the catalog defines.
func Size() int {
	n := 0
	for _, e := range catalog {
		n += e.count
	}
	return n
}

// Shuffle returns a uniformly random permutation of cards as a new slice.
// The input is left untouched. rand.Shuffle implements Fisher-Yates, so every
// permutation is equally likely given an unbiased source.
func Shuffle(cards []Card, r *rand.Rand) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// slug derives the ID stem for a catalog entry.
func (e entry) slug() string {
	switch e.kind {
	case KindProperty:
		return "p-" + string(e.color)
	case KindPropertyWild:
		if len(e.colors) == 0 {
			return "w-any"
		}
		return "w-" + joinColors(e.colors)
	case KindMoney:
		return fmt.Sprintf("m-%d", e.value)
	case KindAction:
		return "a-" + string(e.action)
	case KindRent:
		if len(e.colors) == 0 {
			return "r-any"
		}
		return "r-" + joinColors(e.colors)
	}
	return "card"
}

func joinColors(colors []Color) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = string(c)
	}
	return strings.Join(parts, "-")
}
