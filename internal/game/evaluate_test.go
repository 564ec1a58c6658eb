package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func states(v []LetterVerdict) []LetterState {
	out := make([]LetterState, len(v))
	for i, lv := range v {
		out[i] = lv.State
	}
	return out
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc   string
		secret string
		guess  string
		want   []LetterState
	}{
		{
			desc:   "exact match is all correct",
			secret: "CHIEN",
			guess:  "CHIEN",
			want:   []LetterState{LetterCorrect, LetterCorrect, LetterCorrect, LetterCorrect, LetterCorrect},
		},
		{
			desc:   "no shared letters is all absent",
			secret: "CHIEN",
			guess:  "ROBOT",
			want:   []LetterState{LetterAbsent, LetterAbsent, LetterAbsent, LetterAbsent, LetterAbsent},
		},
		{
			desc:   "duplicate guess letters do not double-claim a single secret letter",
			secret: "ABBEY",
			guess:  "BOBBY",
			want:   []LetterState{LetterPresent, LetterAbsent, LetterCorrect, LetterAbsent, LetterCorrect},
		},
		{
			desc:   "exact match is claimed before an earlier present duplicate",
			secret: "TEMPS",
			guess:  "SSSSS",
			want:   []LetterState{LetterAbsent, LetterAbsent, LetterAbsent, LetterAbsent, LetterCorrect},
		},
		{
			desc:   "case-insensitive comparison",
			secret: "fleur",
			guess:  "FLEUR",
			want:   []LetterState{LetterCorrect, LetterCorrect, LetterCorrect, LetterCorrect, LetterCorrect},
		},
		{
			desc:   "present letters reported in guess order",
			secret: "NAGER",
			guess:  "RENGA",
			want:   []LetterState{LetterPresent, LetterPresent, LetterPresent, LetterPresent, LetterPresent},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			got := Evaluate(tc.secret, tc.guess)
			require.Len(t, got, len([]rune(tc.guess)))
			assert.Equal(t, tc.want, states(got))
		})
	}
}

func TestEvaluateLettersMirrorGuess(t *testing.T) {
	t.Parallel()

	got := Evaluate("BOIRE", "livre")
	letters := make([]string, len(got))
	for i, lv := range got {
		letters[i] = lv.Letter
	}
	assert.Equal(t, []string{"L", "I", "V", "R", "E"}, letters)
}

func TestEvaluateIsPure(t *testing.T) {
	t.Parallel()

	first := Evaluate("ABBEY", "BOBBY")
	second := Evaluate("ABBEY", "BOBBY")
	assert.Equal(t, first, second)
}
