// internal/httpserver/server.go
//
// HTTP wiring for the multiplayer Wordle backend.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery,
//     timeouts, JSON content type, credentialed CORS).
//   - Public endpoints: "/", "/health", auth, per-player stats.
//   - Lobby CRUD (require auth): create/join/fetch/leave.
//   - Realtime endpoint: GET /ws/{code} upgrades to the room protocol.
//
// Notes:
//   - The websocket route authenticates before the upgrade; room and
//     identity validity are re-checked after it so refusals carry
//     distinct close codes.
//   - Lobby handlers act on the identity inside the JWT, never on an
//     email taken from the request body.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/NicolasSauli/Projet-Wordle/internal/realtime"
	"github.com/NicolasSauli/Projet-Wordle/internal/store"
)

// Server bundles the router and the core collaborators.
type Server struct {
	r       *chi.Mux
	users   *store.Users
	lobbies *store.Lobbies
	coord   *realtime.Coordinator
	ws      *realtime.WSServer
}

// New constructs a Server, installs middleware, and registers routes.
func New(users *store.Users, lobbies *store.Lobbies, coord *realtime.Coordinator, ws *realtime.WSServer) *Server {
	s := &Server{r: chi.NewRouter(), users: users, lobbies: lobbies, coord: coord, ws: ws}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(corsFromEnv)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Wordle API is running"})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// REST routes get a handler timeout; the websocket route must not,
	// it holds the connection open for its whole lifetime.
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)
		r.With(s.requireAuth).Get("/auth/me", s.handleMe)

		r.Get("/stats/{email}", s.handleStats)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/lobby/create", s.handleLobbyCreate)
			r.Post("/lobby/join", s.handleLobbyJoin)
			r.Get("/lobby/{code}", s.handleLobbyGet)
			r.Post("/lobby/{code}/leave", s.handleLobbyLeave)
		})
	})

	s.r.Get("/ws/{code}", s.handleWS)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("http server listening")
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// handleStats serves persistent per-player counters. Unknown emails
// get zeroed stats rather than an error.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	st, err := s.users.Stats(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleWS authenticates the upgrade request and hands the connection
// to the realtime layer.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	u, err := s.authenticate(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	s.ws.ServeWS(w, r, chi.URLParam(r, "code"), u.Email, u.Nom)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func envStr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
