// internal/game/errors.go
package game

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable machine-readable name for a move rejection. Kinds
// are part of the wire contract; clients branch on them.
type ErrorKind string

const (
	ErrNotInProgress            ErrorKind = "NotInProgress"
	ErrNotYourTurn              ErrorKind = "NotYourTurn"
	ErrUnknownAction            ErrorKind = "UnknownAction"
	ErrTurnNotStarted           ErrorKind = "TurnNotStarted"
	ErrTurnAlreadyStarted       ErrorKind = "TurnAlreadyStarted"
	ErrPlayLimitExceeded        ErrorKind = "PlayLimitExceeded"
	ErrCardNotInHand            ErrorKind = "CardNotInHand"
	ErrPropertiesCannotBeBanked ErrorKind = "PropertiesCannotBeBanked"
	ErrNotAProperty             ErrorKind = "NotAProperty"
	ErrNonPropertyActionOnly    ErrorKind = "NonPropertyActionOnly"
	ErrInvalidPlacement         ErrorKind = "InvalidPlacement"
	ErrDeckExhausted            ErrorKind = "DeckExhausted"
)

// MoveError is a deterministic rejection of a move. It reflects the rules,
// not transient infrastructure state, so callers must not retry it.
type MoveError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func reject(kind ErrorKind, format string, args ...any) *MoveError {
	return &MoveError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsMoveError unwraps err as a *MoveError if it is one.
func AsMoveError(err error) (*MoveError, bool) {
	var me *MoveError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}
