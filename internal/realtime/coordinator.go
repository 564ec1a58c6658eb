// internal/realtime/coordinator.go
//
// Room session coordinator: owns one round per room, serializes every
// mutating operation on it behind a per-room mutex, interprets inbound
// client events and drives hub broadcasts/unicasts.
//
// Locking model: each room has its own mutex; guesses from two players
// in the same room apply as atomic sequences, while different rooms
// never block each other. All deliveries produced by a handler are
// attempted before the room lock is released, so a rankings broadcast
// can never be observed partially delivered relative to the state that
// produced it. Individual delivery failures are swallowed by the hub.

package realtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NicolasSauli/Projet-Wordle/internal/game"
	"github.com/NicolasSauli/Projet-Wordle/internal/store"
)

// LobbyDirectory is the narrow lobby-store surface the coordinator
// consumes: membership snapshots, the round flag, cumulative scores.
type LobbyDirectory interface {
	Get(code string) (store.Lobby, error)
	SetInRound(code string, inRound bool) error
	AddScore(code, email string, points int) error
}

// StatsRecorder persists per-player outcomes after a finished game.
type StatsRecorder interface {
	RecordGame(ctx context.Context, email string, won bool, score int) error
}

// WordPicker supplies the secret word for a new round.
type WordPicker func() string

// Coordinator routes room events between connected clients, the round
// state and the stores.
type Coordinator struct {
	hub     *Hub
	lobbies LobbyDirectory
	stats   StatsRecorder
	pick    WordPicker
	log     zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*roomSession
}

// roomSession is the per-room serialization point. round is nil while
// the room is idle.
type roomSession struct {
	mu    sync.Mutex
	round *game.Round
}

// NewCoordinator wires the coordinator to its collaborators.
func NewCoordinator(hub *Hub, lobbies LobbyDirectory, stats StatsRecorder, pick WordPicker, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		hub:      hub,
		lobbies:  lobbies,
		stats:    stats,
		pick:     pick,
		log:      log,
		sessions: make(map[string]*roomSession),
	}
}

// Hub exposes the coordinator's hub to the connection layer.
func (c *Coordinator) Hub() *Hub { return c.hub }

func (c *Coordinator) session(code string) *roomSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[code]
	if !ok {
		s = &roomSession{}
		c.sessions[code] = s
	}
	return s
}

// Release drops the per-room session state. Called when a lobby is
// destroyed (last member left).
func (c *Coordinator) Release(code string) {
	c.mu.Lock()
	delete(c.sessions, code)
	c.mu.Unlock()
}

// Connected announces a (re)connected member to the whole room,
// including the member list so late joiners can render it.
func (c *Coordinator) Connected(code, email, displayName string) {
	lobby, err := c.lobbies.Get(code)
	if err != nil {
		return
	}
	c.hub.Broadcast(code, Event{Type: EventPlayerJoined, Payload: PlayerJoinedPayload{
		Identity:    email,
		DisplayName: displayName,
		Members:     lobby.Joueurs,
	}}, "")
}

// Disconnected removes the connection and tells the remaining members.
// Lobby membership is untouched: a reconnecting player resumes the
// same room and, mid-round, the same round state. A stale connection
// that was already replaced by a reconnect announces nothing.
func (c *Coordinator) Disconnected(code, email, displayName string, s Sender) {
	if !c.hub.Unregister(code, email, s) {
		return
	}
	c.hub.Broadcast(code, Event{Type: EventPlayerLeft, Payload: PlayerLeftPayload{
		Identity:    email,
		DisplayName: displayName,
	}}, "")
}

// StartRound begins a round when the room is idle and the requester is
// the lobby owner; any other start request is silently ignored. The
// current members are snapshotted into the round: players joining
// afterwards sit this one out.
func (c *Coordinator) StartRound(code, email string) {
	s := c.session(code)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.round != nil {
		return
	}
	lobby, err := c.lobbies.Get(code)
	if err != nil {
		return
	}
	if lobby.Createur != email {
		c.log.Debug().Str("room", code).Str("player", email).Msg("start_round from non-owner ignored")
		return
	}

	members := make([]string, 0, len(lobby.Joueurs))
	for _, m := range lobby.Joueurs {
		members = append(members, m.Email)
	}
	round := game.NewRound(uuid.NewString(), c.pick(), members)
	s.round = round
	if err := c.lobbies.SetInRound(code, true); err != nil {
		s.round = nil
		return
	}

	c.log.Info().Str("room", code).Str("round", round.ID).Int("players", len(members)).Msg("round started")
	c.hub.Broadcast(code, Event{Type: EventRoundStarted, Payload: RoundStartedPayload{
		RoundID:    round.ID,
		WordLength: round.WordLength(),
	}}, "")
}

// SubmitGuess applies one guess for a player.
//
// Silently ignored: no round in progress, guesses by non-participants,
// guesses after the player finished. A wrong-length guess earns the
// submitter an error event and changes nothing for anyone else.
// Otherwise the full result goes to the guesser, a redacted progress
// event to everyone else, and when the guess finished the last open
// player slot the round closes with a rankings broadcast.
func (c *Coordinator) SubmitGuess(ctx context.Context, code, email, word string) {
	s := c.session(code)
	s.mu.Lock()
	defer s.mu.Unlock()

	round := s.round
	if round == nil {
		return
	}

	res, err := round.Submit(email, word)
	switch err {
	case nil:
	case game.ErrWordLength:
		c.hub.Unicast(code, email, Event{Type: EventError, Payload: ErrorPayload{
			Message: fmt.Sprintf("guess must be %d letters", round.WordLength()),
		}})
		return
	default:
		// Non-participant or already finished: deliberate no-op.
		return
	}

	if res.Finished {
		c.recordOutcome(ctx, code, email, res)
	}

	result := GuessResultPayload{
		Verdict:           res.Attempt.Verdict,
		Won:               res.Won,
		Lost:              res.Lost,
		AttemptsRemaining: res.AttemptsRemaining,
	}
	if res.Won {
		score := res.Score
		result.Score = &score
	}
	if res.Lost {
		result.SecretWord = round.Secret
	}
	c.hub.Unicast(code, email, Event{Type: EventGuessResult, Payload: result})

	pr := round.Player(email)
	c.hub.Broadcast(code, Event{Type: EventPlayerProgress, Payload: PlayerProgressPayload{
		Identity:      email,
		DisplayName:   c.displayName(code, email),
		AttemptsCount: len(pr.Attempts),
		Finished:      pr.Finished,
		Won:           pr.Won,
	}}, email)

	// Completion is evaluated once per finishing guess, never polled.
	if res.Finished && round.Complete() {
		c.endRound(code, round)
		s.round = nil
	}
}

// recordOutcome persists a finished player's result: stats always,
// cumulative lobby score on a win. Store failures are logged and do
// not disturb the round.
func (c *Coordinator) recordOutcome(ctx context.Context, code, email string, res game.Result) {
	if res.Won {
		if err := c.lobbies.AddScore(code, email, res.Score); err != nil {
			c.log.Warn().Err(err).Str("room", code).Str("player", email).Msg("lobby score update failed")
		}
	}
	if err := c.stats.RecordGame(ctx, email, res.Won, res.Score); err != nil {
		c.log.Warn().Err(err).Str("player", email).Msg("stats update failed")
	}
}

// endRound computes the final standings and reveals the secret to the
// whole room. Runs under the room lock of the finishing guess.
func (c *Coordinator) endRound(code string, round *game.Round) {
	_ = c.lobbies.SetInRound(code, false)

	lobby, err := c.lobbies.Get(code)
	if err != nil {
		lobby = store.Lobby{}
	}
	names := make(map[string]string, len(lobby.Joueurs))
	for _, m := range lobby.Joueurs {
		names[m.Email] = m.Nom
	}

	ranks := round.Rankings()
	entries := make([]RankEntry, len(ranks))
	for i, r := range ranks {
		entries[i] = RankEntry{
			Rank:        i + 1,
			Identity:    r.Identity,
			DisplayName: names[r.Identity],
			Won:         r.Won,
			Attempts:    r.Attempts,
			Score:       r.Score,
		}
	}

	c.log.Info().Str("room", code).Str("round", round.ID).Msg("round ended")
	c.hub.Broadcast(code, Event{Type: EventRoundEnded, Payload: RoundEndedPayload{
		RoundID:    round.ID,
		SecretWord: round.Secret,
		Rankings:   entries,
		Members:    lobby.Joueurs,
	}}, "")
}

// Chat relays one line to the whole room, sender included. Not gated
// by round state.
func (c *Coordinator) Chat(code, email, displayName, message string) {
	if message == "" {
		return
	}
	c.hub.Broadcast(code, Event{Type: EventChat, Payload: ChatPayload{
		Identity:    email,
		DisplayName: displayName,
		Message:     message,
	}}, "")
}

func (c *Coordinator) displayName(code, email string) string {
	lobby, err := c.lobbies.Get(code)
	if err != nil {
		return email
	}
	for _, m := range lobby.Joueurs {
		if m.Email == email {
			return m.Nom
		}
	}
	return email
}
