// internal/realtime/events.go
//
// Wire format for the room-scoped realtime protocol.
//
// Inbound (client → server): start_round, guess, chat.
// Outbound (server → client): player_joined, round_started,
// guess_result (unicast), player_progress (broadcast, excludes the
// guesser), round_ended, chat, error (unicast), player_left.
//
// Letters of the secret word only ever travel in two places: the
// guess_result unicast to the guesser, and the round_ended / losing
// guess_result reveals once nothing is left to protect.

package realtime

import (
	"github.com/NicolasSauli/Projet-Wordle/internal/game"
	"github.com/NicolasSauli/Projet-Wordle/internal/store"
)

// Inbound message types.
const (
	MsgStartRound = "start_round"
	MsgGuess      = "guess"
	MsgChat       = "chat"
)

// Outbound event types.
const (
	EventPlayerJoined   = "player_joined"
	EventRoundStarted   = "round_started"
	EventGuessResult    = "guess_result"
	EventPlayerProgress = "player_progress"
	EventRoundEnded     = "round_ended"
	EventChat           = "chat"
	EventError          = "error"
	EventPlayerLeft     = "player_left"
)

// ClientMessage is the single inbound envelope. Type selects the
// operation; the other fields are per-type payloads.
type ClientMessage struct {
	Type    string `json:"type"`
	Word    string `json:"word,omitempty"`
	Message string `json:"message,omitempty"`
}

// Event is the outbound envelope.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// PlayerJoinedPayload announces a (re)connected member to the room.
type PlayerJoinedPayload struct {
	Identity    string         `json:"identity"`
	DisplayName string         `json:"display_name"`
	Members     []store.Member `json:"members"`
}

// RoundStartedPayload reveals the word length only, never letters.
type RoundStartedPayload struct {
	RoundID    string `json:"round_id"`
	WordLength int    `json:"word_length"`
}

// GuessResultPayload is unicast to the guesser after each accepted
// guess. SecretWord is set only when the player just lost.
type GuessResultPayload struct {
	Verdict           []game.LetterVerdict `json:"verdict"`
	Won               bool                 `json:"won"`
	Lost              bool                 `json:"lost"`
	AttemptsRemaining int                  `json:"attempts_remaining"`
	Score             *int                 `json:"score,omitempty"`
	SecretWord        string               `json:"secret_word,omitempty"`
}

// PlayerProgressPayload is the redacted per-guess broadcast to the
// rest of the room: counts and flags, never letters.
type PlayerProgressPayload struct {
	Identity      string `json:"identity"`
	DisplayName   string `json:"display_name"`
	AttemptsCount int    `json:"attempts_count"`
	Finished      bool   `json:"finished"`
	Won           bool   `json:"won"`
}

// RankEntry is one row of the final standings broadcast.
type RankEntry struct {
	Rank        int    `json:"rank"`
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
	Won         bool   `json:"won"`
	Attempts    int    `json:"attempts"`
	Score       int    `json:"score"`
}

// RoundEndedPayload closes a round for the whole room.
type RoundEndedPayload struct {
	RoundID    string         `json:"round_id"`
	SecretWord string         `json:"secret_word"`
	Rankings   []RankEntry    `json:"rankings"`
	Members    []store.Member `json:"members"`
}

// ChatPayload relays one chat line, echoed to the sender too.
type ChatPayload struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
	Message     string `json:"message"`
}

// ErrorPayload is unicast to the offending client only.
type ErrorPayload struct {
	Message string `json:"message"`
}

// PlayerLeftPayload announces a disconnect. Lobby membership is kept,
// so the player may reconnect and resume the same round state.
type PlayerLeftPayload struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
}
