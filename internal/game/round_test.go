package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		attempts int
		want     int
	}{
		{attempts: 1, want: 100},
		{attempts: 2, want: 85},
		{attempts: 3, want: 70},
		{attempts: 4, want: 55},
		{attempts: 5, want: 40},
		{attempts: 6, want: 25},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, Score(tc.attempts), "attempts=%d", tc.attempts)
	}
}

func TestNewRoundSnapshotsMembersOnce(t *testing.T) {
	t.Parallel()

	r := NewRound("r1", "chien", []string{"a@x.fr", "b@x.fr", "a@x.fr"})

	assert.Equal(t, "CHIEN", r.Secret)
	assert.Equal(t, 5, r.WordLength())
	assert.NotNil(t, r.Player("a@x.fr"))
	assert.NotNil(t, r.Player("b@x.fr"))
	assert.Nil(t, r.Player("c@x.fr"))
	assert.Len(t, r.order, 2)
}

func TestSubmitWinFirstAttempt(t *testing.T) {
	t.Parallel()

	r := NewRound("r1", "CHIEN", []string{"p1", "p2"})
	res, err := r.Submit("p1", "chien")
	require.NoError(t, err)

	assert.True(t, res.Won)
	assert.False(t, res.Lost)
	assert.True(t, res.Finished)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, 5, res.AttemptsRemaining)

	// p2 never guessed: the round stays open.
	assert.False(t, r.Complete())
}

func TestSubmitRejections(t *testing.T) {
	t.Parallel()

	r := NewRound("r1", "CHIEN", []string{"p1"})

	_, err := r.Submit("stranger", "CHIEN")
	assert.ErrorIs(t, err, ErrNotPlaying)

	_, err = r.Submit("p1", "CHAT")
	assert.ErrorIs(t, err, ErrWordLength)

	_, err = r.Submit("p1", "CHIEN")
	require.NoError(t, err)
	_, err = r.Submit("p1", "CHIEN")
	assert.ErrorIs(t, err, ErrAlreadyFinished)
}

func TestAttemptCeiling(t *testing.T) {
	t.Parallel()

	r := NewRound("r1", "CHIEN", []string{"p1"})
	var last Result
	for i := 0; i < MaxAttempts; i++ {
		res, err := r.Submit("p1", "BOIRE")
		require.NoError(t, err)
		last = res
	}

	assert.True(t, last.Lost)
	assert.False(t, last.Won)
	assert.True(t, last.Finished)
	assert.Equal(t, 0, last.AttemptsRemaining)
	assert.Len(t, r.Player("p1").Attempts, MaxAttempts)

	_, err := r.Submit("p1", "BOIRE")
	assert.ErrorIs(t, err, ErrAlreadyFinished)
}

func TestCompleteRequiresEveryPlayer(t *testing.T) {
	t.Parallel()

	r := NewRound("r1", "CHIEN", []string{"p1", "p2"})

	_, err := r.Submit("p1", "CHIEN")
	require.NoError(t, err)
	assert.False(t, r.Complete())

	_, err = r.Submit("p2", "CHIEN")
	require.NoError(t, err)
	assert.True(t, r.Complete())
}

func TestRankingsWinnersFirstThenFewerAttempts(t *testing.T) {
	t.Parallel()

	r := NewRound("r1", "CHIEN", []string{"slow", "loser", "fast", "tied"})

	// slow wins on attempt 3.
	_, _ = r.Submit("slow", "BOIRE")
	_, _ = r.Submit("slow", "BOIRE")
	_, err := r.Submit("slow", "CHIEN")
	require.NoError(t, err)

	// loser burns every attempt.
	for i := 0; i < MaxAttempts; i++ {
		_, err = r.Submit("loser", "BOIRE")
		require.NoError(t, err)
	}

	// fast wins on attempt 1, tied also wins on attempt 3.
	_, err = r.Submit("fast", "CHIEN")
	require.NoError(t, err)
	_, _ = r.Submit("tied", "BOIRE")
	_, _ = r.Submit("tied", "BOIRE")
	_, err = r.Submit("tied", "CHIEN")
	require.NoError(t, err)

	require.True(t, r.Complete())

	ranks := r.Rankings()
	require.Len(t, ranks, 4)
	assert.Equal(t, "fast", ranks[0].Identity)
	assert.Equal(t, 100, ranks[0].Score)
	// slow and tied both won in 3 attempts; membership order breaks the tie.
	assert.Equal(t, "slow", ranks[1].Identity)
	assert.Equal(t, "tied", ranks[2].Identity)
	assert.Equal(t, 70, ranks[1].Score)
	assert.Equal(t, "loser", ranks[3].Identity)
	assert.False(t, ranks[3].Won)
	assert.Equal(t, 0, ranks[3].Score)
}
