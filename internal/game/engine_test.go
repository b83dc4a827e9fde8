// internal/game/engine_test.go
package game

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardbound/deal/internal/deck"
)

// Card constructors for fixed test piles.
func prop(id string, color deck.Color) deck.Card {
	return deck.Card{ID: id, Kind: deck.KindProperty, Value: 2, Color: color}
}

func wild(id string, colors ...deck.Color) deck.Card {
	return deck.Card{ID: id, Kind: deck.KindPropertyWild, Value: 2, Colors: colors}
}

func money(id string, value int) deck.Card {
	return deck.Card{ID: id, Kind: deck.KindMoney, Value: value}
}

func actionCard(id string, kind deck.ActionKind) deck.Card {
	return deck.Card{ID: id, Kind: deck.KindAction, Value: 1, Action: kind}
}

func rentCard(id string, colors ...deck.Color) deck.Card {
	return deck.Card{ID: id, Kind: deck.KindRent, Value: 1, Colors: colors}
}

// testPile is ten known cards, top first.
func testPile() []deck.Card {
	return []deck.Card{
		prop("p-red-1", deck.Red),
		money("m-1-1", 1),
		prop("p-green-1", deck.Green),
		actionCard("a-pass-go-1", deck.ActionPassGo),
		wild("w-red-yellow-1", deck.Red, deck.Yellow),
		money("m-5-1", 5),
		rentCard("r-red-yellow-1", deck.Red, deck.Yellow),
		prop("p-red-2", deck.Red),
		prop("p-brown-1", deck.Brown),
		money("m-2-1", 2),
	}
}

// setupTestGame builds an in-progress two-player game over testPile with
// empty hands, plus a deterministic engine.
func setupTestGame(t *testing.T, mutate func(*Rules)) (*Engine, *Game) {
	t.Helper()
	rules := DefaultRules()
	if mutate != nil {
		mutate(&rules)
	}
	e := NewEngine(rules, rand.New(rand.NewSource(1)))
	g := New("g1", []string{"A", "B"}, testPile())
	g.Status = StatusInProgress
	require.NoError(t, g.Check())
	return e, g
}

// mustApply applies a move that is expected to succeed.
func mustApply(t *testing.T, e *Engine, g *Game, mv Move) *Game {
	t.Helper()
	next, err := e.Apply(g, mv)
	require.NoError(t, err)
	require.NoError(t, next.Check())
	return next
}

func sortedIDs(g *Game) []string {
	ids := g.CardIDs()
	sort.Strings(ids)
	return ids
}

func TestBeginTurnDrawsTwo(t *testing.T) {
	e, g := setupTestGame(t, nil)

	next := mustApply(t, e, g, Move{Type: MoveBeginTurn, PlayerID: "A"})

	require.Len(t, next.Hands["A"], 2)
	assert.Equal(t, "p-red-1", next.Hands["A"][0].ID)
	assert.Equal(t, "m-1-1", next.Hands["A"][1].ID)
	assert.Len(t, next.DrawPile, 8)
	assert.Equal(t, 0, next.PlaysThisTurn)
	assert.True(t, next.TurnDrawn)

	// Input untouched.
	assert.Empty(t, g.Hands["A"])
	assert.Len(t, g.DrawPile, 10)
}

func TestNotYourTurn(t *testing.T) {
	e, g := setupTestGame(t, nil)
	before := sortedIDs(g)

	_, err := e.Apply(g, Move{Type: MoveBeginTurn, PlayerID: "B"})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrNotYourTurn, me.Kind)
	assert.Equal(t, before, sortedIDs(g))
	assert.Equal(t, 0, g.TurnIndex)
}

func TestNotInProgress(t *testing.T) {
	e, g := setupTestGame(t, nil)

	g.Status = StatusLobby
	_, err := e.Apply(g, Move{Type: MoveBeginTurn, PlayerID: "A"})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrNotInProgress, me.Kind)

	g.Status = StatusFinished
	g.Winner = "A"
	_, err = e.Apply(g, Move{Type: MoveBeginTurn, PlayerID: "A"})
	me, ok = AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrNotInProgress, me.Kind)
}

func TestUnknownAction(t *testing.T) {
	e, g := setupTestGame(t, nil)

	_, err := e.Apply(g, Move{Type: "Shenanigans", PlayerID: "A"})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrUnknownAction, me.Kind)
}

func TestPlayCardToBank(t *testing.T) {
	e, g := setupTestGame(t, nil)
	g = mustApply(t, e, g, Move{Type: MoveBeginTurn, PlayerID: "A"}) // draws p-red-1, m-1-1

	next := mustApply(t, e, g, Move{Type: MovePlayCard, PlayerID: "A", CardID: "m-1-1", PlaceAs: PlaceBank})
	require.Len(t, next.Banks["A"], 1)
	assert.Equal(t, "m-1-1", next.Banks["A"][0].ID)
	assert.Len(t, next.Hands["A"], 1)
	assert.Equal(t, 1, next.PlaysThisTurn)

	// Properties can never be banked.
	_, err := e.Apply(next, Move{Type: MovePlayCard, PlayerID: "A", CardID: "p-red-1", PlaceAs: PlaceBank})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrPropertiesCannotBeBanked, me.Kind)
}

func TestPlayProperty(t *testing.T) {
	e, g := setupTestGame(t, nil)
	g = mustApply(t, e, g, Move{Type: MoveBeginTurn, PlayerID: "A"})

	next := mustApply(t, e, g, Move{Type: MovePlayCard, PlayerID: "A", CardID: "p-red-1", PlaceAs: PlaceProperty})
	require.Len(t, next.Properties["A"][deck.Red], 1)
	assert.Equal(t, "p-red-1", next.Properties["A"][deck.Red][0].ID)
	assert.Equal(t, 1, next.PlaysThisTurn)

	// Money cannot be played as property.
	_, err := e.Apply(next, Move{Type: MovePlayCard, PlayerID: "A", CardID: "m-1-1", PlaceAs: PlaceProperty})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrNotAProperty, me.Kind)
}

func TestPlayWildcardProperty(t *testing.T) {
	e, g := setupTestGame(t, nil)
	g.Hands["A"] = append(g.Hands["A"], wild("w-1", deck.Red, deck.Yellow))
	g.TurnDrawn = true

	next := mustApply(t, e, g, Move{Type: MovePlayCard, PlayerID: "A", CardID: "w-1", PlaceAs: PlaceProperty, Color: deck.Yellow})
	require.Len(t, next.Properties["A"][deck.Yellow], 1)

	// Declared color must be one the wildcard lists.
	g.Hands["A"] = []deck.Card{wild("w-2", deck.Red, deck.Yellow)}
	_, err := e.Apply(g, Move{Type: MovePlayCard, PlayerID: "A", CardID: "w-2", PlaceAs: PlaceProperty, Color: deck.Green})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidPlacement, me.Kind)

	// Multicolor wildcard goes anywhere.
	g.Hands["A"] = []deck.Card{wild("w-any-1")}
	next = mustApply(t, e, g, Move{Type: MovePlayCard, PlayerID: "A", CardID: "w-any-1", PlaceAs: PlaceProperty, Color: deck.Green})
	require.Len(t, next.Properties["A"][deck.Green], 1)
}

func TestPlayActionCard(t *testing.T) {
	e, g := setupTestGame(t, nil)
	g.Hands["A"] = []deck.Card{
		actionCard("a-1", deck.ActionPassGo),
		rentCard("r-1", deck.Red, deck.Yellow),
		prop("p-1", deck.Red),
		money("m-1", 1),
	}
	g.TurnDrawn = true

	next := mustApply(t, e, g, Move{Type: MovePlayCard, PlayerID: "A", CardID: "a-1", PlaceAs: PlaceAction})
	require.Len(t, next.DiscardPile, 1)
	assert.Equal(t, "a-1", next.DiscardPile[0].ID)

	next = mustApply(t, e, next, Move{Type: MovePlayCard, PlayerID: "A", CardID: "r-1", PlaceAs: PlaceAction})
	assert.Equal(t, "r-1", next.DiscardPile[1].ID)

	_, err := e.Apply(next, Move{Type: MovePlayCard, PlayerID: "A", CardID: "p-1", PlaceAs: PlaceAction})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrNonPropertyActionOnly, me.Kind)

	_, err = e.Apply(next, Move{Type: MovePlayCard, PlayerID: "A", CardID: "m-1", PlaceAs: PlaceAction})
	me, ok = AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrNonPropertyActionOnly, me.Kind)
}

func TestInvalidPlacement(t *testing.T) {
	e, g := setupTestGame(t, nil)
	g = mustApply(t, e, g, Move{Type: MoveBeginTurn, PlayerID: "A"})

	_, err := e.Apply(g, Move{Type: MovePlayCard, PlayerID: "A", CardID: "m-1-1", PlaceAs: "pocket"})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidPlacement, me.Kind)
}

func TestCardNotInHand(t *testing.T) {
	e, g := setupTestGame(t, nil)
	g = mustApply(t, e, g, Move{Type: MoveBeginTurn, PlayerID: "A"})

	_, err := e.Apply(g, Move{Type: MovePlayCard, PlayerID: "A", CardID: "m-5-1", PlaceAs: PlaceBank})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCardNotInHand, me.Kind)
}

func TestPlayLimit(t *testing.T) {
	e, g := setupTestGame(t, nil)
	g.Hands["A"] = []deck.Card{
		money("m-a", 1), money("m-b", 2), money("m-c", 3), money("m-d", 4),
	}
	g.TurnDrawn = true

	for _, id := range []string{"m-a", "m-b", "m-c"} {
		g = mustApply(t, e, g, Move{Type: MovePlayCard, PlayerID: "A", CardID: id, PlaceAs: PlaceBank})
	}
	require.Equal(t, 3, g.PlaysThisTurn)

	_, err := e.Apply(g, Move{Type: MovePlayCard, PlayerID: "A", CardID: "m-d", PlaceAs: PlaceBank})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrPlayLimitExceeded, me.Kind)

	// EndTurn resets the budget for the next player.
	g = mustApply(t, e, g, Move{Type: MoveEndTurn, PlayerID: "A"})
	assert.Equal(t, 0, g.PlaysThisTurn)
}

func TestStrictPhases(t *testing.T) {
	e, g := setupTestGame(t, nil)
	g.Hands["A"] = []deck.Card{money("m-a", 1)}

	_, err := e.Apply(g, Move{Type: MovePlayCard, PlayerID: "A", CardID: "m-a", PlaceAs: PlaceBank})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTurnNotStarted, me.Kind)

	_, err = e.Apply(g, Move{Type: MoveEndTurn, PlayerID: "A"})
	me, ok = AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTurnNotStarted, me.Kind)

	g = mustApply(t, e, g, Move{Type: MoveBeginTurn, PlayerID: "A"})
	_, err = e.Apply(g, Move{Type: MoveBeginTurn, PlayerID: "A"})
	me, ok = AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTurnAlreadyStarted, me.Kind)
}

func TestLenientPhases(t *testing.T) {
	e, g := setupTestGame(t, func(r *Rules) { r.StrictPhases = false })
	g.Hands["A"] = []deck.Card{money("m-a", 1)}

	// Reference behavior: playing and ending without a draw is tolerated.
	next := mustApply(t, e, g, Move{Type: MovePlayCard, PlayerID: "A", CardID: "m-a", PlaceAs: PlaceBank})
	next = mustApply(t, e, next, Move{Type: MoveEndTurn, PlayerID: "A"})
	assert.Equal(t, 1, next.TurnIndex)
}

func TestEndTurnDiscardsDownToHandLimit(t *testing.T) {
	e, g := setupTestGame(t, nil)
	hand := make([]deck.Card, 0, 10)
	for _, id := range []string{"h0", "h1", "h2", "h3", "h4", "h5", "h6", "h7", "h8", "h9"} {
		hand = append(hand, money(id, 1))
	}
	g.Hands["A"] = hand
	g.TurnDrawn = true

	next := mustApply(t, e, g, Move{Type: MoveEndTurn, PlayerID: "A"})

	require.Len(t, next.Hands["A"], 7)
	require.Len(t, next.DiscardPile, 3)
	// Most recently added go first: h9, h8, h7.
	assert.Equal(t, "h9", next.DiscardPile[0].ID)
	assert.Equal(t, "h8", next.DiscardPile[1].ID)
	assert.Equal(t, "h7", next.DiscardPile[2].ID)
	assert.Equal(t, 1, next.TurnIndex)
	assert.Equal(t, 0, next.PlaysThisTurn)
	assert.False(t, next.TurnDrawn)
}

func TestEndTurnRotationWraps(t *testing.T) {
	e, g := setupTestGame(t, nil)
	g.TurnIndex = 1
	g.TurnDrawn = true

	next := mustApply(t, e, g, Move{Type: MoveEndTurn, PlayerID: "B"})
	assert.Equal(t, 0, next.TurnIndex)
}

// threeCompleteSets gives a player brown(2) + darkblue(2) + utility(2).
func threeCompleteSets(prefix string) map[deck.Color][]deck.Card {
	return map[deck.Color][]deck.Card{
		deck.Brown:    {prop(prefix+"-b1", deck.Brown), prop(prefix+"-b2", deck.Brown)},
		deck.DarkBlue: {prop(prefix+"-d1", deck.DarkBlue), prop(prefix+"-d2", deck.DarkBlue)},
		deck.Utility:  {prop(prefix+"-u1", deck.Utility), prop(prefix+"-u2", deck.Utility)},
	}
}

func TestWinAtEndTurn(t *testing.T) {
	e, g := setupTestGame(t, nil)
	g.Properties["A"] = threeCompleteSets("A")
	g.TurnDrawn = true

	next := mustApply(t, e, g, Move{Type: MoveEndTurn, PlayerID: "A"})
	assert.Equal(t, StatusFinished, next.Status)
	assert.Equal(t, "A", next.Winner)

	// Finished games accept no further moves.
	_, err := e.Apply(next, Move{Type: MoveBeginTurn, PlayerID: next.CurrentPlayer()})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrNotInProgress, me.Kind)
}

func TestWinOnCompletingSetMidTurn(t *testing.T) {
	e, g := setupTestGame(t, nil)
	g.Properties["A"] = map[deck.Color][]deck.Card{
		deck.Brown:    {prop("ab1", deck.Brown), prop("ab2", deck.Brown)},
		deck.DarkBlue: {prop("ad1", deck.DarkBlue), prop("ad2", deck.DarkBlue)},
		deck.Utility:  {prop("au1", deck.Utility)},
	}
	g.Hands["A"] = []deck.Card{prop("au2", deck.Utility)}
	g.TurnDrawn = true

	next := mustApply(t, e, g, Move{Type: MovePlayCard, PlayerID: "A", CardID: "au2", PlaceAs: PlaceProperty})
	assert.Equal(t, StatusFinished, next.Status)
	assert.Equal(t, "A", next.Winner)
}

func TestDeckExhaustedAndReshuffle(t *testing.T) {
	e, g := setupTestGame(t, nil)
	g.DrawPile = []deck.Card{money("last", 1)}
	g.DiscardPile = []deck.Card{money("d1", 1), money("d2", 2), money("d3", 3)}

	next := mustApply(t, e, g, Move{Type: MoveBeginTurn, PlayerID: "A"})
	require.Len(t, next.Hands["A"], 2)
	// The known top card is drawn first; the reshuffled discard sits below.
	assert.Equal(t, "last", next.Hands["A"][0].ID)
	assert.Empty(t, next.DiscardPile)
	assert.Len(t, next.DrawPile, 2)

	// Nothing left anywhere: DeckExhausted.
	g2 := New("g2", []string{"A", "B"}, []deck.Card{money("only", 1)})
	g2.Status = StatusInProgress
	_, err := e.Apply(g2, Move{Type: MoveBeginTurn, PlayerID: "A"})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrDeckExhausted, me.Kind)
}

func TestReshuffleDisabled(t *testing.T) {
	e, g := setupTestGame(t, func(r *Rules) { r.ReshuffleDiscard = false })
	g.DrawPile = []deck.Card{money("last", 1)}
	g.DiscardPile = []deck.Card{money("d1", 1), money("d2", 2)}

	_, err := e.Apply(g, Move{Type: MoveBeginTurn, PlayerID: "A"})
	me, ok := AsMoveError(err)
	require.True(t, ok)
	assert.Equal(t, ErrDeckExhausted, me.Kind)
	assert.Len(t, g.DiscardPile, 2)
}

func TestIdempotentRejection(t *testing.T) {
	e, g := setupTestGame(t, nil)
	before := sortedIDs(g)
	mv := Move{Type: MoveBeginTurn, PlayerID: "B"}

	_, err1 := e.Apply(g, mv)
	_, err2 := e.Apply(g, mv)
	me1, ok1 := AsMoveError(err1)
	me2, ok2 := AsMoveError(err2)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, me1.Kind, me2.Kind)
	assert.Equal(t, me1.Message, me2.Message)
	assert.Equal(t, before, sortedIDs(g))
}

func TestScenarioFullTurn(t *testing.T) {
	e, g := setupTestGame(t, nil)

	// A begins: hand gains the top 2, pile shrinks by 2.
	g1 := mustApply(t, e, g, Move{Type: MoveBeginTurn, PlayerID: "A"})
	require.Len(t, g1.Hands["A"], 2)
	require.Len(t, g1.DrawPile, 8)
	assert.Equal(t, 0, g1.PlaysThisTurn)

	// A plays the drawn red property.
	g2 := mustApply(t, e, g1, Move{Type: MovePlayCard, PlayerID: "A", CardID: "p-red-1", PlaceAs: PlaceProperty})
	require.Len(t, g2.Properties["A"][deck.Red], 1)
	assert.Equal(t, 1, g2.PlaysThisTurn)
	assert.Len(t, g2.Hands["A"], 1)

	// A ends: rotation to B, budget reset.
	g3 := mustApply(t, e, g2, Move{Type: MoveEndTurn, PlayerID: "A"})
	assert.Equal(t, 1, g3.TurnIndex)
	assert.Equal(t, 0, g3.PlaysThisTurn)
}

func TestStartDealsOpeningHands(t *testing.T) {
	e := NewEngine(DefaultRules(), rand.New(rand.NewSource(1)))
	pile := deck.Shuffle(deck.Build(), rand.New(rand.NewSource(2)))
	g := New("g1", []string{"A", "B", "C"}, pile)

	started, err := e.Start(g)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, started.Status)
	for _, p := range started.Players {
		assert.Len(t, started.Hands[p], 5)
	}
	assert.Len(t, started.DrawPile, len(pile)-15)
	require.NoError(t, started.Check())

	// Starting twice is a caller bug, not a move rejection.
	_, err = e.Start(started)
	require.Error(t, err)
	_, isMove := AsMoveError(err)
	assert.False(t, isMove)
}

// TestCardConservation drives full random-ish turns over a real deck and
// checks the card multiset never changes.
func TestCardConservation(t *testing.T) {
	e := NewEngine(DefaultRules(), rand.New(rand.NewSource(7)))
	pile := deck.Shuffle(deck.Build(), rand.New(rand.NewSource(8)))
	g := New("g1", []string{"A", "B"}, pile)
	g, err := e.Start(g)
	require.NoError(t, err)
	initial := sortedIDs(g)

	for turn := 0; turn < 40 && g.Status == StatusInProgress; turn++ {
		p := g.CurrentPlayer()

		next, err := e.Apply(g, Move{Type: MoveBeginTurn, PlayerID: p})
		if me, ok := AsMoveError(err); ok && me.Kind == ErrDeckExhausted {
			break
		}
		require.NoError(t, err)
		g = next
		require.Equal(t, initial, sortedIDs(g))

		// Try to play up to the budget, walking the current hand.
		for plays := 0; plays < 3 && g.Status == StatusInProgress; plays++ {
			if len(g.Hands[p]) == 0 {
				break
			}
			card := g.Hands[p][0]
			mv := Move{Type: MovePlayCard, PlayerID: p, CardID: card.ID}
			switch {
			case card.Kind == deck.KindProperty:
				mv.PlaceAs = PlaceProperty
			case card.Kind == deck.KindPropertyWild:
				mv.PlaceAs = PlaceProperty
				if len(card.Colors) > 0 {
					mv.Color = card.Colors[0]
				} else {
					mv.Color = deck.Brown
				}
			default:
				mv.PlaceAs = PlaceBank
			}
			g = mustApply(t, e, g, mv)
			require.Equal(t, initial, sortedIDs(g))
		}

		if g.Status != StatusInProgress {
			break
		}
		g = mustApply(t, e, g, Move{Type: MoveEndTurn, PlayerID: p})
		require.Equal(t, initial, sortedIDs(g))
	}
}
