// internal/game/types.go
//
// Core type definitions for the multiplayer round engine.
// Defines:
//   - LetterState: per-letter result of a guess (correct/present/absent).
//   - LetterVerdict: one letter of a guess paired with its state.
//   - Attempt: a submitted guess word and its full verdict.
//   - PlayerRound: one player's progress through the current round.

package game

// LetterState classifies a single letter of a guess.
// Possible values:
//   - "correct": letter is in the secret word at this exact position.
//   - "present": letter exists in the secret word at a different position.
//   - "absent":  letter does not exist in the secret word at all.
//
// The string values are the wire format sent to clients.
type LetterState string

const (
	LetterCorrect LetterState = "correct"
	LetterPresent LetterState = "present"
	LetterAbsent  LetterState = "absent"
)

// LetterVerdict is the evaluation of one guess letter.
// A verdict slice is ordered by guess position, end to end.
type LetterVerdict struct {
	Letter string      `json:"lettre"`
	State  LetterState `json:"etat"`
}

// Attempt is one submitted guess together with its verdict.
type Attempt struct {
	Word    string          `json:"mot"`
	Verdict []LetterVerdict `json:"correction"`
}

// PlayerRound tracks a single player's progress in the current round.
// Once Finished is true no further attempts are accepted from that player.
type PlayerRound struct {
	Attempts []Attempt
	Finished bool
	Won      bool
}
