// internal/game/move.go
package game

import "github.com/cardbound/deal/internal/deck"

// MoveType discriminates the move union.
type MoveType string

const (
	MoveBeginTurn MoveType = "BeginTurn"
	MovePlayCard  MoveType = "PlayCard"
	MoveEndTurn   MoveType = "EndTurn"
)

// Placement says where a played card should land.
type Placement string

const (
	PlaceBank     Placement = "bank"
	PlaceProperty Placement = "property"
	PlaceAction   Placement = "action"
)

// Move is one player-submitted intent against a game. Type and PlayerID are
// always required. CardID and PlaceAs are required for PlayCard; Color is
// required only when playing a wildcard as a property.
//
// Cards are referenced by ID, never by hand position, so a move remains
// unambiguous regardless of how the client orders its view of the hand.
type Move struct {
	Type     MoveType   `json:"actionType"`
	PlayerID string     `json:"playerId"`
	CardID   string     `json:"cardId,omitempty"`
	PlaceAs  Placement  `json:"placeAs,omitempty"`
	Color    deck.Color `json:"color,omitempty"`
}
