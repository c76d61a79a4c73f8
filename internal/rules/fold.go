package rules

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letters that do not decompose under NFD, plus typographic quotes.
var foldReplacer = strings.NewReplacer(
	"đ", "d",
	"Đ", "D",
	"’", "'",
	"‘", "'",
	"\u00a0", " ",
)

// Fold lower-cases s and strips diacritics so that "Hoàn tất" and
// "hoan tat" compare equal.
func Fold(s string) string {
	return stripMarks(strings.ToLower(s))
}

// stripMarks removes combining marks without touching case; it is applied to
// pattern sources, where lower-casing would turn \B or \S into other classes.
func stripMarks(s string) string {
	// transform.Chain keeps state, so each call builds its own.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return foldReplacer.Replace(out)
}
