package stringutils_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"github.com/weehong/github-repository-metadata-generator/internal/utils/stringutils"
)

func TestTruncate(t *testing.T) {
	require.Equal(t, "", stringutils.Truncate("", 10))
	require.Equal(t, "abc", stringutils.Truncate("abc", 10))
	require.Equal(t, "abc", stringutils.Truncate("abcdef", 3))
	require.Equal(t, "", stringutils.Truncate("abc", 0))
	require.Equal(t, "", stringutils.Truncate("abc", -1))
	require.Equal(t, strings.Repeat("x", 350), stringutils.Truncate(strings.Repeat("x", 1000), 350))
}

func TestTruncateCountsCharactersNotBytes(t *testing.T) {
	// 400 two-byte runes: under the byte count but over the limit in
	// characters, the cut must leave exactly max characters.
	long := strings.Repeat("é", 400)
	got := stringutils.Truncate(long, 350)
	require.Equal(t, 350, utf8.RuneCountInString(got))
	require.True(t, utf8.ValidString(got))

	// 200 two-byte runes (400 bytes) are within a 350-character limit and
	// must come back untouched.
	short := strings.Repeat("é", 200)
	require.Equal(t, short, stringutils.Truncate(short, 350))

	// A cut through three-byte runes still lands on a rune boundary.
	got = stringutils.Truncate(strings.Repeat("日", 120), 100)
	require.Equal(t, strings.Repeat("日", 100), got)
	require.True(t, utf8.ValidString(got))
}
