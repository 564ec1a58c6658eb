// internal/httpserver/routes_lobby.go
//
// Lobby CRUD endpoints. Lobbies are in-memory and volatile; the
// authenticated user is always the acting player. Membership changes
// here are plain bookkeeping — the realtime rules (round snapshots,
// owner-only start) live in the coordinator.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/NicolasSauli/Projet-Wordle/internal/store"
)

type lobbyCreateReq struct {
	Nom string `json:"nom"`
}

type lobbyJoinReq struct {
	Code string `json:"code"`
}

func (s *Server) handleLobbyCreate(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req lobbyCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Nom) == "" {
		writeError(w, http.StatusBadRequest, "nom is required")
		return
	}

	l := s.lobbies.Create(strings.TrimSpace(req.Nom), u.Email, u.Nom)
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleLobbyJoin(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req lobbyJoinReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	l, err := s.lobbies.Join(req.Code, u.Email, u.Nom)
	if errors.Is(err, store.ErrLobbyNotFound) {
		writeError(w, http.StatusNotFound, "lobby not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "lobby error")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleLobbyGet(w http.ResponseWriter, r *http.Request) {
	l, err := s.lobbies.Get(chi.URLParam(r, "code"))
	if errors.Is(err, store.ErrLobbyNotFound) {
		writeError(w, http.StatusNotFound, "lobby not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "lobby error")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleLobbyLeave(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	code := chi.URLParam(r, "code")

	deleted, err := s.lobbies.Leave(code, u.Email)
	if errors.Is(err, store.ErrLobbyNotFound) {
		writeError(w, http.StatusNotFound, "lobby not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "lobby error")
		return
	}
	if deleted {
		s.coord.Release(code)
		writeJSON(w, http.StatusOK, map[string]string{"message": "lobby deleted"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "left lobby"})
}
