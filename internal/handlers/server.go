// internal/handlers/server.go
package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cardbound/deal/internal/auth"
	"github.com/cardbound/deal/internal/coordinator"
	"github.com/cardbound/deal/internal/gameid"
)

// Server is the HTTP boundary over the coordinator. All game mutation flows
// through the coordinator; handlers only decode, authenticate and encode.
type Server struct {
	coord *coordinator.Coordinator
	auth  *auth.Service
	ids   *gameid.Generator
	log   *logrus.Logger
	rng   *rand.Rand
}

// NewServer wires the boundary layer. A nil rng gets a time-seeded source; it
// shuffles the deck for freshly created games.
func NewServer(coord *coordinator.Coordinator, authSvc *auth.Service, log *logrus.Logger, rng *rand.Rand) *Server {
	if log == nil {
		log = logrus.New()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Server{
		coord: coord,
		auth:  authSvc,
		ids:   gameid.NewGenerator(nil),
		log:   log,
		rng:   rng,
	}
}

// Routes registers the game endpoints on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/game/create", s.handleCreateGame)
	mux.HandleFunc("/game/start", s.handleStartGame)
	mux.HandleFunc("/game/move", s.handleMove)
	mux.HandleFunc("/game/state", s.handleState)
}

// bearerClaims authenticates the request's bearer token and checks it was
// issued for gameID.
func (s *Server) bearerClaims(r *http.Request, gameID string) (auth.Claims, bool) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		return auth.Claims{}, false
	}
	claims, err := s.auth.Verify(token)
	if err != nil || claims.GameID != gameID {
		return auth.Claims{}, false
	}
	return claims, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]string{
		"error":   kind,
		"message": message,
	})
}
