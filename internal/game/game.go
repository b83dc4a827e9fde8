// internal/game/game.go
package game

import (
	"fmt"

	"github.com/cardbound/deal/internal/deck"
)

// Status is the game lifecycle state. Transitions only run forward:
// lobby -> inProgress -> finished.
type Status string

const (
	StatusLobby      Status = "lobby"
	StatusInProgress Status = "inProgress"
	StatusFinished   Status = "finished"
)

// Game is the aggregate root for one table. It is treated as a value: the
// engine never mutates a Game in place, it derives a new one, and the
// coordinator persists whole aggregates only. Player order is fixed once the
// game leaves the lobby and defines the turn sequence.
type Game struct {
	ID      string   `json:"id"`
	Players []string `json:"players"`

	DrawPile    []deck.Card                           `json:"drawPile"` // top = head
	DiscardPile []deck.Card                           `json:"discardPile"`
	Hands       map[string][]deck.Card                `json:"hands"`
	Banks       map[string][]deck.Card                `json:"banks"`
	Properties  map[string]map[deck.Color][]deck.Card `json:"properties"`

	TurnIndex     int  `json:"turnIndex"`
	PlaysThisTurn int  `json:"playsThisTurn"`
	TurnDrawn     bool `json:"turnDrawn"` // BeginTurn has run this rotation

	Status Status `json:"status"`
	Winner string `json:"winner,omitempty"`
}

// New builds a lobby-state game over an already-built draw pile. The deck is
// handed in rather than built here so callers control shuffling and tests can
// use fixed piles.
func New(id string, players []string, drawPile []deck.Card) *Game {
	g := &Game{
		ID:          id,
		Players:     append([]string(nil), players...),
		DrawPile:    append([]deck.Card(nil), drawPile...),
		DiscardPile: []deck.Card{},
		Hands:       make(map[string][]deck.Card, len(players)),
		Banks:       make(map[string][]deck.Card, len(players)),
		Properties:  make(map[string]map[deck.Color][]deck.Card, len(players)),
		Status:      StatusLobby,
	}
	for _, p := range players {
		g.Hands[p] = []deck.Card{}
		g.Banks[p] = []deck.Card{}
		g.Properties[p] = make(map[deck.Color][]deck.Card)
	}
	return g
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() string {
	return g.Players[g.TurnIndex]
}

// Clone deep-copies the aggregate. The engine works on a clone so a rejected
// or half-evaluated transition can never leak into the caller's copy.
func (g *Game) Clone() *Game {
	out := &Game{
		ID:            g.ID,
		Players:       append([]string(nil), g.Players...),
		DrawPile:      append([]deck.Card(nil), g.DrawPile...),
		DiscardPile:   append([]deck.Card(nil), g.DiscardPile...),
		Hands:         make(map[string][]deck.Card, len(g.Hands)),
		Banks:         make(map[string][]deck.Card, len(g.Banks)),
		Properties:    make(map[string]map[deck.Color][]deck.Card, len(g.Properties)),
		TurnIndex:     g.TurnIndex,
		PlaysThisTurn: g.PlaysThisTurn,
		TurnDrawn:     g.TurnDrawn,
		Status:        g.Status,
		Winner:        g.Winner,
	}
	for p, hand := range g.Hands {
		out.Hands[p] = append([]deck.Card(nil), hand...)
	}
	for p, bank := range g.Banks {
		out.Banks[p] = append([]deck.Card(nil), bank...)
	}
	for p, sets := range g.Properties {
		cp := make(map[deck.Color][]deck.Card, len(sets))
		for color, cards := range sets {
			cp[color] = append([]deck.Card(nil), cards...)
		}
		out.Properties[p] = cp
	}
	return out
}

// Check audits the structural invariants of the aggregate. A non-nil error
// here is a programming defect, not a move-validation failure: accepted
// transitions must never produce a state that fails Check.
func (g *Game) Check() error {
	if len(g.Players) == 0 {
		return fmt.Errorf("game %s has no players", g.ID)
	}
	if g.TurnIndex < 0 || g.TurnIndex >= len(g.Players) {
		return fmt.Errorf("game %s turn index %d out of range", g.ID, g.TurnIndex)
	}
	if (g.Winner != "") != (g.Status == StatusFinished) {
		return fmt.Errorf("game %s winner/status mismatch (winner=%q status=%s)", g.ID, g.Winner, g.Status)
	}

	seen := make(map[string]string)
	note := func(c deck.Card, loc string) error {
		if prev, dup := seen[c.ID]; dup {
			return fmt.Errorf("game %s card %s in both %s and %s", g.ID, c.ID, prev, loc)
		}
		seen[c.ID] = loc
		return nil
	}
	for _, c := range g.DrawPile {
		if err := note(c, "drawPile"); err != nil {
			return err
		}
	}
	for _, c := range g.DiscardPile {
		if err := note(c, "discardPile"); err != nil {
			return err
		}
	}
	for p, hand := range g.Hands {
		for _, c := range hand {
			if err := note(c, "hand:"+p); err != nil {
				return err
			}
		}
	}
	for p, bank := range g.Banks {
		for _, c := range bank {
			if err := note(c, "bank:"+p); err != nil {
				return err
			}
			if c.IsProperty() {
				return fmt.Errorf("game %s property card %s banked by %s", g.ID, c.ID, p)
			}
		}
	}
	for p, sets := range g.Properties {
		for color, cards := range sets {
			for _, c := range cards {
				if err := note(c, fmt.Sprintf("properties:%s:%s", p, color)); err != nil {
					return err
				}
				if !c.IsProperty() {
					return fmt.Errorf("game %s non-property card %s in %s's %s set", g.ID, c.ID, p, color)
				}
			}
		}
	}
	return nil
}

// CardIDs returns the multiset of card IDs across every location, used by
// conservation checks.
func (g *Game) CardIDs() []string {
	var ids []string
	for _, c := range g.DrawPile {
		ids = append(ids, c.ID)
	}
	for _, c := range g.DiscardPile {
		ids = append(ids, c.ID)
	}
	for _, hand := range g.Hands {
		for _, c := range hand {
			ids = append(ids, c.ID)
		}
	}
	for _, bank := range g.Banks {
		for _, c := range bank {
			ids = append(ids, c.ID)
		}
	}
	for _, sets := range g.Properties {
		for _, cards := range sets {
			for _, c := range cards {
				ids = append(ids, c.ID)
			}
		}
	}
	return ids
}
