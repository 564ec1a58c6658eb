package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUsers(t *testing.T) *Users {
	t.Helper()
	db, err := OpenDB(t.TempDir() + "/test.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return NewUsers(db)
}

func TestUsersCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	users := newTestUsers(t)

	err := users.Create(ctx, User{
		Email:        "alice@x.fr",
		Nom:          "Durand",
		Prenom:       "Alice",
		PasswordHash: "$2a$10$fake",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)

	u, err := users.ByEmail(ctx, "ALICE@x.fr")
	require.NoError(t, err)
	assert.Equal(t, "Durand", u.Nom)
	assert.Equal(t, "Alice", u.Prenom)

	_, err = users.ByEmail(ctx, "nobody@x.fr")
	assert.ErrorIs(t, err, ErrUserNotFound)

	ok, err := users.Exists(ctx, "alice@x.fr")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.Exists(ctx, "nobody@x.fr")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUsersDuplicateEmailRejected(t *testing.T) {
	ctx := context.Background()
	users := newTestUsers(t)

	u := User{Email: "alice@x.fr", Nom: "Durand", Prenom: "Alice", PasswordHash: "h", CreatedAt: time.Now()}
	require.NoError(t, users.Create(ctx, u))
	assert.Error(t, users.Create(ctx, u))
}

func TestUsersRecordGame(t *testing.T) {
	ctx := context.Background()
	users := newTestUsers(t)

	u := User{Email: "alice@x.fr", Nom: "Durand", Prenom: "Alice", PasswordHash: "h", CreatedAt: time.Now()}
	require.NoError(t, users.Create(ctx, u))

	require.NoError(t, users.RecordGame(ctx, "alice@x.fr", true, 55))
	require.NoError(t, users.RecordGame(ctx, "alice@x.fr", false, 0))
	require.NoError(t, users.RecordGame(ctx, "alice@x.fr", true, 25))

	st, err := users.Stats(ctx, "alice@x.fr")
	require.NoError(t, err)
	assert.Equal(t, 3, st.Parties)
	assert.Equal(t, 2, st.Victoires)
	// Best score is max-merged, never lowered by later wins.
	assert.Equal(t, 55, st.MeilleurScore)
}

func TestStatsForUnknownUserAreZero(t *testing.T) {
	ctx := context.Background()
	users := newTestUsers(t)

	st, err := users.Stats(ctx, "nobody@x.fr")
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)
}
