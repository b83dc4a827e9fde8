// internal/game/rules.go
package game

// Rules defines the table policy applied by the engine. The zero value is not
// playable; start from DefaultRules and override fields as needed.
type Rules struct {
	MaxPlaysPerTurn int `json:"maxPlaysPerTurn"` // PlayCard budget per turn
	HandLimit       int `json:"handLimit"`       // hand size enforced at EndTurn
	DrawPerTurn     int `json:"drawPerTurn"`     // cards drawn by BeginTurn
	DealCount       int `json:"dealCount"`       // starting hand size
	SetsToWin       int `json:"setsToWin"`       // complete sets needed to win

	// StrictPhases rejects PlayCard/EndTurn before BeginTurn has run in the
	// current rotation, and a second BeginTurn within one rotation. When
	// false, out-of-phase moves are tolerated.
	StrictPhases bool `json:"strictPhases"`

	// ReshuffleDiscard feeds the shuffled discard pile under the draw pile
	// when the draw pile cannot cover a turn's draw. When false, BeginTurn
	// fails immediately with DeckExhausted instead.
	ReshuffleDiscard bool `json:"reshuffleDiscard"`
}

// DefaultRules returns the standard table policy.
func DefaultRules() Rules {
	return Rules{
		MaxPlaysPerTurn:  3,
		HandLimit:        7,
		DrawPerTurn:      2,
		DealCount:        5,
		SetsToWin:        3,
		StrictPhases:     true,
		ReshuffleDiscard: true,
	}
}
