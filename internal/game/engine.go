// internal/game/engine.go
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cardbound/deal/internal/deck"
)

// Engine validates and applies moves. Apply is a pure function of
// (state, move): it never mutates its input and either returns a new,
// fully-consistent Game or a *MoveError. The only non-determinism is the rng,
// used when the discard pile is reshuffled into the draw pile; retries at the
// coordinator recompute the whole transition, so that is safe.
type Engine struct {
	rules Rules
	rng   *rand.Rand
}

// NewEngine builds an engine with the given rules. A nil rng gets a
// time-seeded source.
func NewEngine(rules Rules, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rules: rules, rng: rng}
}

// Rules returns the table policy the engine applies.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Apply validates mv against g and returns the resulting game. Preconditions
// run in a fixed order and the first failure wins; nothing is mutated on any
// path, rejected or accepted.
func (e *Engine) Apply(g *Game, mv Move) (*Game, error) {
	if g.Status != StatusInProgress {
		return nil, reject(ErrNotInProgress, "game %s is %s", g.ID, g.Status)
	}
	if mv.PlayerID != g.CurrentPlayer() {
		return nil, reject(ErrNotYourTurn, "it is %s's turn", g.CurrentPlayer())
	}

	switch mv.Type {
	case MoveBeginTurn:
		return e.beginTurn(g.Clone())
	case MovePlayCard:
		return e.playCard(g.Clone(), mv)
	case MoveEndTurn:
		return e.endTurn(g.Clone())
	default:
		return nil, reject(ErrUnknownAction, "unrecognized action %q", mv.Type)
	}
}

// Start deals each player their opening hand and moves the game out of the
// lobby. Like Apply it derives a new Game rather than mutating the input.
func (e *Engine) Start(g *Game) (*Game, error) {
	if g.Status != StatusLobby {
		return nil, fmt.Errorf("game %s cannot start from status %s", g.ID, g.Status)
	}
	if len(g.Players) == 0 {
		return nil, fmt.Errorf("game %s has no players", g.ID)
	}
	next := g.Clone()
	need := e.rules.DealCount * len(next.Players)
	if len(next.DrawPile) < need {
		return nil, fmt.Errorf("game %s draw pile has %d cards, need %d to deal", g.ID, len(next.DrawPile), need)
	}
	for _, p := range next.Players {
		next.Hands[p] = append(next.Hands[p], next.DrawPile[:e.rules.DealCount]...)
		next.DrawPile = next.DrawPile[e.rules.DealCount:]
	}
	next.Status = StatusInProgress
	next.TurnIndex = 0
	next.PlaysThisTurn = 0
	next.TurnDrawn = false
	return next, nil
}

func (e *Engine) beginTurn(g *Game) (*Game, error) {
	if e.rules.StrictPhases && g.TurnDrawn {
		return nil, reject(ErrTurnAlreadyStarted, "%s already drew this turn", g.CurrentPlayer())
	}
	if len(g.DrawPile) < e.rules.DrawPerTurn && e.rules.ReshuffleDiscard && len(g.DiscardPile) > 0 {
		// Refill from the discard pile: shuffled and slid under the remains
		// of the draw pile so the known top cards keep their order.
		g.DrawPile = append(g.DrawPile, deck.Shuffle(g.DiscardPile, e.rng)...)
		g.DiscardPile = []deck.Card{}
	}
	if len(g.DrawPile) < e.rules.DrawPerTurn {
		return nil, reject(ErrDeckExhausted, "draw pile has %d cards, need %d", len(g.DrawPile), e.rules.DrawPerTurn)
	}

	p := g.CurrentPlayer()
	g.Hands[p] = append(g.Hands[p], g.DrawPile[:e.rules.DrawPerTurn]...)
	g.DrawPile = g.DrawPile[e.rules.DrawPerTurn:]
	g.PlaysThisTurn = 0
	g.TurnDrawn = true
	return g, nil
}

func (e *Engine) playCard(g *Game, mv Move) (*Game, error) {
	if e.rules.StrictPhases && !g.TurnDrawn {
		return nil, reject(ErrTurnNotStarted, "draw before playing")
	}
	if g.PlaysThisTurn >= e.rules.MaxPlaysPerTurn {
		return nil, reject(ErrPlayLimitExceeded, "already played %d cards this turn", g.PlaysThisTurn)
	}

	p := g.CurrentPlayer()
	idx := -1
	for i, c := range g.Hands[p] {
		if c.ID == mv.CardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, reject(ErrCardNotInHand, "card %q is not in %s's hand", mv.CardID, p)
	}
	card := g.Hands[p][idx]

	switch mv.PlaceAs {
	case PlaceBank:
		if card.IsProperty() {
			return nil, reject(ErrPropertiesCannotBeBanked, "card %s is a property", card.ID)
		}
		g.Hands[p] = removeAt(g.Hands[p], idx)
		g.Banks[p] = append(g.Banks[p], card)

	case PlaceProperty:
		if !card.IsProperty() {
			return nil, reject(ErrNotAProperty, "card %s is a %s", card.ID, card.Kind)
		}
		color := card.Color
		if card.Kind == deck.KindPropertyWild {
			color = mv.Color
			if _, known := deck.SetSizes[color]; !known {
				return nil, reject(ErrInvalidPlacement, "wildcard %s needs a declared set color, got %q", card.ID, color)
			}
		}
		if !card.UsableAs(color) {
			return nil, reject(ErrInvalidPlacement, "card %s cannot be played as %q", card.ID, color)
		}
		g.Hands[p] = removeAt(g.Hands[p], idx)
		if g.Properties[p] == nil {
			g.Properties[p] = make(map[deck.Color][]deck.Card)
		}
		g.Properties[p][color] = append(g.Properties[p][color], card)
		// Completing the winning set mid-turn ends the game immediately.
		e.evaluateWin(g, p)

	case PlaceAction:
		if card.IsProperty() {
			return nil, reject(ErrNonPropertyActionOnly, "card %s is a property", card.ID)
		}
		if card.Kind != deck.KindAction && card.Kind != deck.KindRent {
			return nil, reject(ErrNonPropertyActionOnly, "card %s is a %s, not an action or rent card", card.ID, card.Kind)
		}
		// Minimal resolution: the card is spent to the discard pile. Rent
		// collection and steal effects resolve at a richer layer on top of
		// this transition.
		g.Hands[p] = removeAt(g.Hands[p], idx)
		g.DiscardPile = append(g.DiscardPile, card)

	default:
		return nil, reject(ErrInvalidPlacement, "unknown placement %q", mv.PlaceAs)
	}

	g.PlaysThisTurn++
	return g, nil
}

func (e *Engine) endTurn(g *Game) (*Game, error) {
	if e.rules.StrictPhases && !g.TurnDrawn {
		return nil, reject(ErrTurnNotStarted, "draw before ending the turn")
	}

	p := g.CurrentPlayer()
	// Discard down to the hand limit, most recently added first.
	for len(g.Hands[p]) > e.rules.HandLimit {
		last := len(g.Hands[p]) - 1
		g.DiscardPile = append(g.DiscardPile, g.Hands[p][last])
		g.Hands[p] = g.Hands[p][:last]
	}

	g.TurnIndex = (g.TurnIndex + 1) % len(g.Players)
	g.PlaysThisTurn = 0
	g.TurnDrawn = false
	// Evaluated against the player who just acted, not the new current player.
	e.evaluateWin(g, p)
	return g, nil
}

// evaluateWin flips the game to finished when player holds enough complete
// sets. No-op once the game is already decided.
func (e *Engine) evaluateWin(g *Game, player string) {
	if g.Status != StatusInProgress {
		return
	}
	if CompleteSets(g.Properties[player]) >= e.rules.SetsToWin {
		g.Status = StatusFinished
		g.Winner = player
	}
}

func removeAt(cards []deck.Card, i int) []deck.Card {
	out := make([]deck.Card, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	return append(out, cards[i+1:]...)
}
