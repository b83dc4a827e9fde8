// internal/store/store.go
package store

import (
	"context"
	"errors"
	"time"

	"github.com/cardbound/deal/internal/game"
)

var (
	// ErrNotFound means no record exists under the requested game ID.
	ErrNotFound = errors.New("store: game not found")
	// ErrExists means Create collided with an existing record.
	ErrExists = errors.New("store: game already exists")
	// ErrVersionConflict means another writer committed since the record was
	// read. The caller should re-read and recompute.
	ErrVersionConflict = errors.New("store: version conflict")
)

// Record is one persisted game aggregate plus its optimistic-concurrency
// version. The whole aggregate is the unit of storage; no sub-field is ever
// written independently.
type Record struct {
	ID        string     `json:"id"`
	Version   int64      `json:"version"`
	Game      *game.Game `json:"game"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Store is the keyed read-modify-write capability the coordinator runs on.
//
// Update commits only when the stored version still equals rec.Version,
// bumping it by one on success; otherwise it returns ErrVersionConflict and
// writes nothing.
type Store interface {
	Create(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
}
