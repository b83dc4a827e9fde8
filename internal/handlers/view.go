// internal/handlers/view.go
package handlers

import (
	"github.com/cardbound/deal/internal/deck"
	"github.com/cardbound/deal/internal/game"
	"github.com/cardbound/deal/internal/store"
)

// OpponentView is what one player may see of another: played cards are
// public, the hand is only a count.
type OpponentView struct {
	PlayerID      string                     `json:"player_id"`
	HandSize      int                        `json:"hand_size"`
	Bank          []deck.Card                `json:"bank"`
	Properties    map[deck.Color][]deck.Card `json:"properties"`
	CompleteSets  int                        `json:"complete_sets"`
	IsCurrentTurn bool                       `json:"is_current_turn"`
}

// PlayerView is the redacted snapshot returned to one player. Piles are
// exposed as sizes except the visible discard top; only the requesting
// player's own hand is revealed.
type PlayerView struct {
	GameID        string                     `json:"game_id"`
	Version       int64                      `json:"version"`
	Status        game.Status                `json:"status"`
	Winner        string                     `json:"winner,omitempty"`
	CurrentPlayer string                     `json:"current_player"`
	PlaysThisTurn int                        `json:"plays_this_turn"`
	TurnDrawn     bool                       `json:"turn_drawn"`
	DrawPileSize  int                        `json:"draw_pile_size"`
	DiscardSize   int                        `json:"discard_size"`
	DiscardTop    *deck.Card                 `json:"discard_top,omitempty"`
	Hand          []deck.Card                `json:"hand"`
	Bank          []deck.Card                `json:"bank"`
	Properties    map[deck.Color][]deck.Card `json:"properties"`
	Opponents     []OpponentView             `json:"opponents"`
}

// BuildPlayerView projects a stored record into forPlayer's perspective.
func BuildPlayerView(rec *store.Record, forPlayer string) PlayerView {
	g := rec.Game
	view := PlayerView{
		GameID:        g.ID,
		Version:       rec.Version,
		Status:        g.Status,
		Winner:        g.Winner,
		CurrentPlayer: g.CurrentPlayer(),
		PlaysThisTurn: g.PlaysThisTurn,
		TurnDrawn:     g.TurnDrawn,
		DrawPileSize:  len(g.DrawPile),
		DiscardSize:   len(g.DiscardPile),
		Hand:          append([]deck.Card{}, g.Hands[forPlayer]...),
		Bank:          append([]deck.Card{}, g.Banks[forPlayer]...),
		Properties:    copySets(g.Properties[forPlayer]),
	}
	if n := len(g.DiscardPile); n > 0 {
		top := g.DiscardPile[n-1]
		view.DiscardTop = &top
	}
	for i, p := range g.Players {
		if p == forPlayer {
			continue
		}
		view.Opponents = append(view.Opponents, OpponentView{
			PlayerID:      p,
			HandSize:      len(g.Hands[p]),
			Bank:          append([]deck.Card{}, g.Banks[p]...),
			Properties:    copySets(g.Properties[p]),
			CompleteSets:  game.CompleteSets(g.Properties[p]),
			IsCurrentTurn: i == g.TurnIndex,
		})
	}
	return view
}

func copySets(sets map[deck.Color][]deck.Card) map[deck.Color][]deck.Card {
	out := make(map[deck.Color][]deck.Card, len(sets))
	for color, cards := range sets {
		out[color] = append([]deck.Card{}, cards...)
	}
	return out
}
