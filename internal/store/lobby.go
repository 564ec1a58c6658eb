// internal/store/lobby.go
//
// In-memory lobby store. Lobbies are volatile by design: they live for
// the process lifetime only, like in-flight game sessions.
//
// Characteristics:
//   - Lobbies keyed by server-generated 6-digit codes.
//   - Members are insertion-ordered; joining twice is idempotent.
//   - A lobby with zero members is destroyed.
//   - Concurrency-safe via RWMutex; accessors return deep copies so
//     callers never share mutable state with the store.

package store

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
)

// ErrLobbyNotFound is returned for unknown lobby codes.
var ErrLobbyNotFound = errors.New("lobby not found")

// Member is one player entry in a lobby. Score is the cumulative
// room score across rounds; it only grows.
type Member struct {
	Email string `json:"email"`
	Nom   string `json:"nom"`
	Score int    `json:"score"`
}

// Lobby is a coded multiplayer session container.
type Lobby struct {
	Code     string   `json:"code"`
	Nom      string   `json:"nom"`
	Createur string   `json:"createur"`
	Joueurs  []Member `json:"joueurs"`
	EnPartie bool     `json:"enPartie"`
}

// Lobbies is the in-memory map-based lobby store.
type Lobbies struct {
	mu      sync.RWMutex
	lobbies map[string]*Lobby
}

// NewLobbies constructs an empty lobby store.
func NewLobbies() *Lobbies {
	return &Lobbies{lobbies: make(map[string]*Lobby)}
}

// Create makes a new lobby with a unique 6-digit code. The creator is
// the owner and the first member.
func (s *Lobbies) Create(nom, email, displayName string) Lobby {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := generateCode()
	for _, taken := s.lobbies[code]; taken; _, taken = s.lobbies[code] {
		code = generateCode()
	}

	l := &Lobby{
		Code:     code,
		Nom:      nom,
		Createur: email,
		Joueurs:  []Member{{Email: email, Nom: displayName}},
	}
	s.lobbies[code] = l
	return copyLobby(l)
}

// Join adds a player to a lobby. Already-present players are left
// untouched (idempotent re-join keeps their cumulative score).
func (s *Lobbies) Join(code, email, displayName string) (Lobby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lobbies[code]
	if !ok {
		return Lobby{}, ErrLobbyNotFound
	}
	if !hasMember(l, email) {
		l.Joueurs = append(l.Joueurs, Member{Email: email, Nom: displayName})
	}
	return copyLobby(l), nil
}

// Get returns a snapshot of a lobby.
func (s *Lobbies) Get(code string) (Lobby, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lobbies[code]
	if !ok {
		return Lobby{}, ErrLobbyNotFound
	}
	return copyLobby(l), nil
}

// Leave removes a player from a lobby and reports whether the lobby
// was deleted because it became empty.
func (s *Lobbies) Leave(code, email string) (deleted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lobbies[code]
	if !ok {
		return false, ErrLobbyNotFound
	}
	kept := l.Joueurs[:0]
	for _, m := range l.Joueurs {
		if m.Email != email {
			kept = append(kept, m)
		}
	}
	l.Joueurs = kept
	if len(l.Joueurs) == 0 {
		delete(s.lobbies, code)
		return true, nil
	}
	return false, nil
}

// AddScore adds points to a member's cumulative lobby score.
func (s *Lobbies) AddScore(code, email string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lobbies[code]
	if !ok {
		return ErrLobbyNotFound
	}
	for i := range l.Joueurs {
		if l.Joueurs[i].Email == email {
			l.Joueurs[i].Score += points
			return nil
		}
	}
	return fmt.Errorf("member %s not in lobby %s", email, code)
}

// SetInRound flips the lobby's round flag.
func (s *Lobbies) SetInRound(code string, inRound bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lobbies[code]
	if !ok {
		return ErrLobbyNotFound
	}
	l.EnPartie = inRound
	return nil
}

func hasMember(l *Lobby, email string) bool {
	for _, m := range l.Joueurs {
		if m.Email == email {
			return true
		}
	}
	return false
}

func copyLobby(l *Lobby) Lobby {
	out := *l
	out.Joueurs = append([]Member(nil), l.Joueurs...)
	return out
}

// generateCode returns a random 6-digit lobby code.
func generateCode() string {
	nBig, _ := rand.Int(rand.Reader, big.NewInt(1_000_000))
	return fmt.Sprintf("%06d", nBig.Int64())
}
