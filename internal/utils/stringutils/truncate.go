package stringutils

import "unicode/utf8"

// Truncate returns s cut off at max characters (runes, not bytes), so a cut
// never lands mid-rune and produces invalid UTF-8. It makes no attempt to
// respect word boundaries; callers use it to enforce hard API limits where
// a mid-word cut is acceptable.
func Truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
