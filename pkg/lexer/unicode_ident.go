package lexer

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// idStart merges the Unicode general categories ECMA-262 §12.7 builds
// ID_Start from (letters and letter-numbers), via x/text's rangetable
// merge rather than the coarser unicode.IsLetter.
var idStart = rangetable.Merge(unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl)

// idContinue adds ID_Start plus the categories ECMA-262 §12.7 adds for
// ID_Continue: combining marks, decimal digits, and connector
// punctuation (of which ASCII `_` is one instance, handled separately by
// isIdentContinue below since `_` and `$` are granted identifier status
// outside any Unicode category).
var idContinue = rangetable.Merge(idStart, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)

func isUnicodeIdentStart(r rune) bool    { return unicode.Is(idStart, r) }
func isUnicodeIdentContinue(r rune) bool { return unicode.Is(idContinue, r) }
