package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitEmbeddedDefaults(t *testing.T) {
	require.NoError(t, Init())
	assert.Greater(t, Count(), 0)
}

func TestRandomAnswerIsFiveUppercaseLetters(t *testing.T) {
	require.NoError(t, Init())
	for i := 0; i < 50; i++ {
		w := RandomAnswer()
		require.Len(t, w, 5)
		for _, r := range w {
			assert.True(t, r >= 'A' && r <= 'Z', "unexpected rune %q in %q", r, w)
		}
	}
}

func TestNormalizeWord(t *testing.T) {
	testCases := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: " chien ", want: "CHIEN", ok: true},
		{in: "CHIEN", want: "CHIEN", ok: true},
		{in: "chat", ok: false},
		{in: "soleil", ok: false},
		{in: "ch1en", ok: false},
		{in: "", ok: false},
	}
	for _, tc := range testCases {
		got, ok := normalizeWord(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got)
		}
	}
}
