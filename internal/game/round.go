// internal/game/round.go
//
// Round state for one multiplayer play-through of a secret word.
// A Round snapshots the room membership at start time: players joining
// the room afterwards do not participate. Each player guesses
// independently against the same secret, up to MaxAttempts times.
//
// A Round carries no lock of its own. All mutation goes through the
// room session coordinator, which serializes access per room.

package game

import (
	"errors"
	"sort"
	"strings"
)

const (
	// MaxAttempts is the per-player attempt ceiling for a round.
	MaxAttempts = 6

	winBaseScore      = 100
	perAttemptPenalty = 15
)

var (
	// ErrNotPlaying is returned for players outside the round snapshot.
	ErrNotPlaying = errors.New("player is not part of this round")

	// ErrAlreadyFinished is returned once a player's round is over.
	ErrAlreadyFinished = errors.New("player already finished this round")

	// ErrWordLength is returned when a guess has the wrong length.
	ErrWordLength = errors.New("guess length does not match the secret word")
)

// Round holds the state of one active round in a room.
type Round struct {
	ID     string
	Secret string // always uppercase

	order   []string // member identities in room insertion order
	players map[string]*PlayerRound
}

// Result describes the outcome of a single accepted guess.
type Result struct {
	Attempt           Attempt
	Won               bool
	Lost              bool
	Finished          bool // Won || Lost
	AttemptsRemaining int
	Score             int // non-zero only on a win
}

// Rank is one row of the final standings.
type Rank struct {
	Identity string `json:"identity"`
	Won      bool   `json:"won"`
	Attempts int    `json:"attempts"`
	Score    int    `json:"score"`
}

// NewRound starts a round over secret for the given member identities.
// Duplicate identities are ignored; insertion order is preserved and
// later used as the tie-break order for rankings.
func NewRound(id, secret string, members []string) *Round {
	r := &Round{
		ID:      id,
		Secret:  strings.ToUpper(secret),
		players: make(map[string]*PlayerRound, len(members)),
	}
	for _, m := range members {
		if _, ok := r.players[m]; ok {
			continue
		}
		r.players[m] = &PlayerRound{}
		r.order = append(r.order, m)
	}
	return r
}

// WordLength returns the number of letters in the secret word.
func (r *Round) WordLength() int { return len([]rune(r.Secret)) }

// Player returns the round state for one identity, or nil for
// identities outside the round snapshot.
func (r *Round) Player(identity string) *PlayerRound {
	return r.players[identity]
}

// Submit evaluates one guess for a player and applies the outcome.
//
// Errors:
//   - ErrNotPlaying for identities outside the round snapshot.
//   - ErrAlreadyFinished once the player has won or lost.
//   - ErrWordLength when the guess length differs from the secret's.
//
// On a win the score is a decreasing step function of attempt count,
// floored at zero: 100 for the first attempt, minus 15 per extra one.
func (r *Round) Submit(identity, guess string) (Result, error) {
	pr, ok := r.players[identity]
	if !ok {
		return Result{}, ErrNotPlaying
	}
	if pr.Finished {
		return Result{}, ErrAlreadyFinished
	}
	guess = strings.ToUpper(strings.TrimSpace(guess))
	if len([]rune(guess)) != r.WordLength() {
		return Result{}, ErrWordLength
	}

	attempt := Attempt{Word: guess, Verdict: Evaluate(r.Secret, guess)}
	pr.Attempts = append(pr.Attempts, attempt)

	res := Result{
		Attempt:           attempt,
		Won:               allCorrect(attempt.Verdict),
		AttemptsRemaining: MaxAttempts - len(pr.Attempts),
	}
	res.Lost = !res.Won && len(pr.Attempts) >= MaxAttempts
	res.Finished = res.Won || res.Lost

	if res.Won {
		pr.Finished, pr.Won = true, true
		res.Score = Score(len(pr.Attempts))
	} else if res.Lost {
		pr.Finished = true
	}
	return res, nil
}

// Complete reports whether every player in the round snapshot has
// finished. The coordinator evaluates this once per finishing guess.
func (r *Round) Complete() bool {
	for _, pr := range r.players {
		if !pr.Finished {
			return false
		}
	}
	return true
}

// Rankings computes the final standings: winners first, then fewer
// attempts; ties keep the membership order from round start.
func (r *Round) Rankings() []Rank {
	ranks := make([]Rank, 0, len(r.order))
	for _, id := range r.order {
		pr := r.players[id]
		rank := Rank{Identity: id, Won: pr.Won, Attempts: len(pr.Attempts)}
		if pr.Won {
			rank.Score = Score(rank.Attempts)
		}
		ranks = append(ranks, rank)
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Won != ranks[j].Won {
			return ranks[i].Won
		}
		return ranks[i].Attempts < ranks[j].Attempts
	})
	return ranks
}

// Score returns the points awarded for a win on the given attempt
// number: 100 on the first attempt, 15 fewer per additional attempt,
// never below zero.
func Score(attempts int) int {
	s := winBaseScore - perAttemptPenalty*(attempts-1)
	if s < 0 {
		return 0
	}
	return s
}
