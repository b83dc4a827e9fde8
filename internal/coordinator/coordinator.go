// internal/coordinator/coordinator.go
package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cardbound/deal/internal/cache"
	"github.com/cardbound/deal/internal/deck"
	"github.com/cardbound/deal/internal/game"
	"github.com/cardbound/deal/internal/store"
)

// ErrContended is returned after the retry budget is spent on version
// conflicts. Unlike move rejections it is safe for the caller to retry.
var ErrContended = errors.New("coordinator: game is contended, try again")

const defaultMaxRetries = 5

// Coordinator drives the read-validate-apply-commit cycle for one move at a
// time per call. The engine is pure, so a lost compare-and-swap race is
// recovered by recomputing the whole transition from a fresh read; no move is
// ever half-applied. Games are independent units of concurrency; nothing here
// orders writes across games.
type Coordinator struct {
	store      store.Store
	engine     *game.Engine
	cache      *cache.Cache
	log        *logrus.Logger
	maxRetries int
}

// New wires a coordinator. cache may be nil; log may be nil for a default
// logger.
func New(st store.Store, eng *game.Engine, ca *cache.Cache, log *logrus.Logger) *Coordinator {
	if log == nil {
		log = logrus.New()
	}
	return &Coordinator{
		store:      st,
		engine:     eng,
		cache:      ca,
		log:        log,
		maxRetries: defaultMaxRetries,
	}
}

// Mutate reads the current game, derives its successor through fn, and
// commits it with compare-and-swap. On a version conflict the whole cycle
// restarts from a fresh read. Errors from fn are deterministic for a given
// state and are surfaced without retrying.
func (c *Coordinator) Mutate(ctx context.Context, id string, fn func(*game.Game) (*game.Game, error)) (*store.Record, error) {
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		rec, err := c.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		next, err := fn(rec.Game)
		if err != nil {
			return nil, err
		}
		rec.Game = next

		err = c.store.Update(ctx, rec)
		if errors.Is(err, store.ErrVersionConflict) {
			c.log.WithFields(logrus.Fields{
				"game":    id,
				"attempt": attempt + 1,
			}).Debug("lost commit race, retrying from fresh read")
			continue
		}
		if err != nil {
			return nil, err
		}
		c.refreshSnapshot(ctx, rec)
		return rec, nil
	}
	c.log.WithField("game", id).Warn("retry budget exhausted on version conflicts")
	return nil, ErrContended
}

// ApplyMove runs one move through the engine and commits the result. On
// success the move is also pushed to the history queue, best-effort.
func (c *Coordinator) ApplyMove(ctx context.Context, gameID string, mv game.Move) (*store.Record, error) {
	rec, err := c.Mutate(ctx, gameID, func(g *game.Game) (*game.Game, error) {
		return c.engine.Apply(g, mv)
	})
	if err != nil {
		return nil, err
	}

	mvJSON, merr := json.Marshal(mv)
	if merr == nil {
		merr = c.cache.PublishMove(ctx, cache.MoveRecord{
			ID:        uuid.New(),
			GameID:    gameID,
			Version:   rec.Version,
			PlayerID:  mv.PlayerID,
			Move:      mvJSON,
			Timestamp: time.Now().UnixMilli(),
		})
	}
	if merr != nil {
		c.log.WithError(merr).WithField("game", gameID).Warn("move history publish failed")
	}
	return rec, nil
}

// CreateGame persists a fresh lobby-state game over the given draw pile.
func (c *Coordinator) CreateGame(ctx context.Context, id string, players []string, drawPile []deck.Card) (*store.Record, error) {
	rec := &store.Record{ID: id, Game: game.New(id, players, drawPile)}
	if err := c.store.Create(ctx, rec); err != nil {
		return nil, err
	}
	c.refreshSnapshot(ctx, rec)
	return rec, nil
}

// StartGame deals opening hands and flips the game to inProgress.
func (c *Coordinator) StartGame(ctx context.Context, id string) (*store.Record, error) {
	return c.Mutate(ctx, id, c.engine.Start)
}

// GetGame reads a game, serving from the snapshot cache when possible.
func (c *Coordinator) GetGame(ctx context.Context, id string) (*store.Record, error) {
	if rec, err := c.cache.GetSnapshot(ctx, id); err == nil {
		return rec, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		c.log.WithError(err).WithField("game", id).Warn("snapshot read failed, falling back to store")
	}
	rec, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.refreshSnapshot(ctx, rec)
	return rec, nil
}

func (c *Coordinator) refreshSnapshot(ctx context.Context, rec *store.Record) {
	if err := c.cache.SetSnapshot(ctx, rec); err != nil {
		c.log.WithError(err).WithField("game", rec.ID).Warn("snapshot refresh failed")
	}
}
