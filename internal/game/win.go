// internal/game/win.go
package game

import "github.com/cardbound/deal/internal/deck"

// CompleteSets counts the colors in props whose played cards reach the
// required set size from deck.SetSizes. Colors missing from the table never
// count, whatever their bucket size.
func CompleteSets(props map[deck.Color][]deck.Card) int {
	n := 0
	for color, cards := range props {
		need, ok := deck.SetSizes[color]
		if ok && len(cards) >= need {
			n++
		}
	}
	return n
}

// IsWinner reports whether a property layout holds at least setsToWin
// complete color sets.
func IsWinner(props map[deck.Color][]deck.Card, setsToWin int) bool {
	return CompleteSets(props) >= setsToWin
}
