package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePassword(t *testing.T) {
	t.Parallel()

	t.Run("accepts lengths 8 through 64", func(t *testing.T) {
		for _, raw := range []string{
			"12345678",
			strings.Repeat("a", 64),
			"😀😁😂😃😄😅😆😎", // 8 runes, far more bytes
		} {
			pw, err := ParsePassword(raw)
			require.NoError(t, err, raw)
			require.Equal(t, raw, pw.Reveal())
		}
	})

	t.Run("rejects 7 runes as too short", func(t *testing.T) {
		for _, raw := range []string{"1234567", "😀😁😂😃😄😅😆"} {
			_, err := ParsePassword(raw)
			require.Error(t, err)
			require.Contains(t, err.Error(), "too short")
		}
	})

	t.Run("rejects 65 runes as too long", func(t *testing.T) {
		_, err := ParsePassword(strings.Repeat("a", 65))
		require.Error(t, err)
		require.Contains(t, err.Error(), "too long")
	})

	t.Run("String redacts", func(t *testing.T) {
		pw, err := ParsePassword("hunter2hunter2")
		require.NoError(t, err)
		require.NotContains(t, pw.String(), "hunter2")
	})
}
