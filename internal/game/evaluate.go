// internal/game/evaluate.go
//
// Guess evaluation for a single attempt.
// Implements the classic two-pass scoring algorithm:
//   Pass 1: mark exact-position matches and count the remaining
//           (unclaimed) secret letters.
//   Pass 2: for each non-exact position, left to right, mark present
//           if an unclaimed instance of the letter remains, else absent.
//
// Processing exact matches first prevents a letter that is correctly
// placed elsewhere from being consumed as "present" by an earlier
// duplicate. Evaluation is case-insensitive: both inputs are uppercased
// before comparison. Pure function, no state.

package game

import "strings"

// Evaluate compares guess against secret and returns one LetterVerdict
// per guess position. The caller must ensure len(guess) == len(secret);
// length validation and rejection happen at the round layer.
func Evaluate(secret, guess string) []LetterVerdict {
	secretRunes := []rune(strings.ToUpper(secret))
	guessRunes := []rune(strings.ToUpper(guess))
	n := len(guessRunes)

	verdicts := make([]LetterVerdict, n)

	// Unclaimed secret letters, counted per letter after removing the
	// exact matches in the first pass.
	unclaimed := make(map[rune]int, n)

	for i := 0; i < n; i++ {
		verdicts[i].Letter = string(guessRunes[i])
		if guessRunes[i] == secretRunes[i] {
			verdicts[i].State = LetterCorrect
		} else {
			unclaimed[secretRunes[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if verdicts[i].State == LetterCorrect {
			continue
		}
		if unclaimed[guessRunes[i]] > 0 {
			verdicts[i].State = LetterPresent
			unclaimed[guessRunes[i]]--
		} else {
			verdicts[i].State = LetterAbsent
		}
	}
	return verdicts
}

// allCorrect reports whether every verdict in the slice is LetterCorrect.
func allCorrect(v []LetterVerdict) bool {
	for _, lv := range v {
		if lv.State != LetterCorrect {
			return false
		}
	}
	return true
}
