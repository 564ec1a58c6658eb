package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLobbyCreate(t *testing.T) {
	t.Parallel()
	s := NewLobbies()

	l := s.Create("vendredi", "alice@x.fr", "Alice")
	assert.Len(t, l.Code, 6)
	assert.Equal(t, "alice@x.fr", l.Createur)
	require.Len(t, l.Joueurs, 1)
	assert.Equal(t, "Alice", l.Joueurs[0].Nom)
	assert.False(t, l.EnPartie)
}

func TestLobbyJoinIsIdempotent(t *testing.T) {
	t.Parallel()
	s := NewLobbies()
	l := s.Create("vendredi", "alice@x.fr", "Alice")

	_, err := s.Join(l.Code, "bob@x.fr", "Bob")
	require.NoError(t, err)
	require.NoError(t, s.AddScore(l.Code, "bob@x.fr", 55))

	got, err := s.Join(l.Code, "bob@x.fr", "Bob")
	require.NoError(t, err)
	require.Len(t, got.Joueurs, 2)
	// Re-joining keeps the cumulative score and the insertion order.
	assert.Equal(t, "alice@x.fr", got.Joueurs[0].Email)
	assert.Equal(t, "bob@x.fr", got.Joueurs[1].Email)
	assert.Equal(t, 55, got.Joueurs[1].Score)
}

func TestLobbyJoinUnknownCode(t *testing.T) {
	t.Parallel()
	s := NewLobbies()
	_, err := s.Join("000000", "bob@x.fr", "Bob")
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestLobbyLeaveDeletesWhenEmpty(t *testing.T) {
	t.Parallel()
	s := NewLobbies()
	l := s.Create("vendredi", "alice@x.fr", "Alice")
	_, err := s.Join(l.Code, "bob@x.fr", "Bob")
	require.NoError(t, err)

	deleted, err := s.Leave(l.Code, "alice@x.fr")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = s.Leave(l.Code, "bob@x.fr")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.Get(l.Code)
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestLobbySnapshotsAreCopies(t *testing.T) {
	t.Parallel()
	s := NewLobbies()
	l := s.Create("vendredi", "alice@x.fr", "Alice")

	snap, err := s.Get(l.Code)
	require.NoError(t, err)
	snap.Joueurs[0].Score = 999

	fresh, err := s.Get(l.Code)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Joueurs[0].Score)
}

func TestLobbyAddScoreAccumulates(t *testing.T) {
	t.Parallel()
	s := NewLobbies()
	l := s.Create("vendredi", "alice@x.fr", "Alice")

	require.NoError(t, s.AddScore(l.Code, "alice@x.fr", 100))
	require.NoError(t, s.AddScore(l.Code, "alice@x.fr", 25))

	got, err := s.Get(l.Code)
	require.NoError(t, err)
	assert.Equal(t, 125, got.Joueurs[0].Score)
}
