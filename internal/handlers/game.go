// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cardbound/deal/internal/coordinator"
	"github.com/cardbound/deal/internal/deck"
	"github.com/cardbound/deal/internal/game"
	"github.com/cardbound/deal/internal/store"
)

type createGameRequest struct {
	Players []string `json:"players"`
}

type createGameResponse struct {
	GameID string            `json:"game_id"`
	Tokens map[string]string `json:"tokens"` // player ID -> session token
}

// handleCreateGame allocates a short game ID, persists a lobby-state game
// over a freshly shuffled deck, and mints one session token per player.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", "use POST")
		return
	}
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid JSON body")
		return
	}
	if len(req.Players) < 2 {
		writeError(w, http.StatusBadRequest, "BadRequest", "at least 2 players required")
		return
	}
	seen := make(map[string]bool, len(req.Players))
	for _, p := range req.Players {
		if p == "" || seen[p] {
			writeError(w, http.StatusBadRequest, "BadRequest", "player IDs must be non-empty and unique")
			return
		}
		seen[p] = true
	}

	id := s.ids.Generate()
	pile := deck.Shuffle(deck.Build(), s.rng)
	if _, err := s.coord.CreateGame(r.Context(), id, req.Players, pile); err != nil {
		s.log.WithError(err).Error("create game failed")
		writeError(w, http.StatusInternalServerError, "Internal", "could not create game")
		return
	}

	tokens := make(map[string]string, len(req.Players))
	for _, p := range req.Players {
		tok, err := s.auth.Mint(p, id)
		if err != nil {
			s.log.WithError(err).Error("token mint failed")
			writeError(w, http.StatusInternalServerError, "Internal", "could not issue tokens")
			return
		}
		tokens[p] = tok
	}

	s.log.WithField("game", id).Info("game created")
	writeJSON(w, http.StatusCreated, createGameResponse{GameID: id, Tokens: tokens})
}

type gameIDRequest struct {
	GameID string `json:"game_id"`
}

// handleStartGame deals opening hands and moves the game in progress. Any
// player of the game may start it.
func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", "use POST")
		return
	}
	var req gameIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "BadRequest", "game_id required")
		return
	}
	if _, ok := s.bearerClaims(r, req.GameID); !ok {
		writeError(w, http.StatusForbidden, "Forbidden", "valid session token required")
		return
	}

	if _, err := s.coord.StartGame(r.Context(), req.GameID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NotFound", "no such game")
			return
		}
		if errors.Is(err, coordinator.ErrContended) {
			writeError(w, http.StatusServiceUnavailable, "Contended", "try again")
			return
		}
		writeError(w, http.StatusConflict, "CannotStart", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type moveRequest struct {
	GameID     string         `json:"game_id"`
	ActionType game.MoveType  `json:"actionType"`
	CardID     string         `json:"cardId,omitempty"`
	PlaceAs    game.Placement `json:"placeAs,omitempty"`
	Color      deck.Color     `json:"color,omitempty"`
}

// handleMove submits one move. The acting player is taken from the session
// token, never from the body, so a client cannot move on another's behalf.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", "use POST")
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "BadRequest", "game_id and actionType required")
		return
	}
	claims, ok := s.bearerClaims(r, req.GameID)
	if !ok {
		writeError(w, http.StatusForbidden, "Forbidden", "valid session token required")
		return
	}

	mv := game.Move{
		Type:     req.ActionType,
		PlayerID: claims.PlayerID,
		CardID:   req.CardID,
		PlaceAs:  req.PlaceAs,
		Color:    req.Color,
	}
	_, err := s.coord.ApplyMove(r.Context(), req.GameID, mv)
	if err != nil {
		if me, isMove := game.AsMoveError(err); isMove {
			writeError(w, moveErrorStatus(me.Kind), string(me.Kind), me.Message)
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NotFound", "no such game")
			return
		}
		if errors.Is(err, coordinator.ErrContended) {
			writeError(w, http.StatusServiceUnavailable, "Contended", "try again")
			return
		}
		s.log.WithError(err).WithField("game", req.GameID).Error("move failed")
		writeError(w, http.StatusInternalServerError, "Internal", "could not apply move")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleState returns the requesting player's redacted view of the game.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", "use GET")
		return
	}
	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "BadRequest", "game_id required")
		return
	}
	claims, ok := s.bearerClaims(r, gameID)
	if !ok {
		writeError(w, http.StatusForbidden, "Forbidden", "valid session token required")
		return
	}

	rec, err := s.coord.GetGame(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NotFound", "no such game")
			return
		}
		s.log.WithError(err).WithField("game", gameID).Error("state read failed")
		writeError(w, http.StatusInternalServerError, "Internal", "could not read game")
		return
	}
	writeJSON(w, http.StatusOK, BuildPlayerView(rec, claims.PlayerID))
}

// moveErrorStatus maps a rejection kind to an HTTP status. Every kind is
// surfaced verbatim in the body; the status only guides generic clients.
func moveErrorStatus(kind game.ErrorKind) int {
	switch kind {
	case game.ErrUnknownAction, game.ErrInvalidPlacement:
		return http.StatusBadRequest
	case game.ErrNotYourTurn:
		return http.StatusForbidden
	default:
		return http.StatusConflict
	}
}
