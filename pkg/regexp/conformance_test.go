package regexp

import (
	"testing"

	"github.com/dlclark/regexp2"
)

// conformanceCorpus pairs a pattern this module's own Parser is expected
// to accept with a sample input and the match outcome regexp2's
// ECMAScript-compatibility mode (a separate, independently-written
// ECMA-262 regex engine) is expected to produce. The test checks the two
// halves separately: this package's parser must accept the pattern, and
// regexp2 must compile it and yield the recorded outcome. It does not
// compare this package's parse tree with regexp2's reading of the
// pattern.
var conformanceCorpus = []struct {
	pattern string
	flags   Flags
	reOpts  regexp2.RegexOptions
	input   string
	want    bool
}{
	{pattern: `^\d+$`, input: "12345", want: true},
	{pattern: `^\d+$`, input: "12a45", want: false},
	{pattern: `(\d{4})-(\d{2})-(\d{2})`, input: "seen on 2024-05-30", want: true},
	{pattern: `\bfoo\b`, input: "a foo b", want: true},
	{pattern: `\bfoo\b`, input: "afoob", want: false},
	{pattern: `[a-z]+`, flags: Flags{IgnoreCase: true}, reOpts: regexp2.IgnoreCase, input: "HELLO", want: true},
	{pattern: `(foo|bar)+baz`, input: "foobarbaz", want: true},
	{pattern: `a(?=b)`, input: "ab", want: true},
	{pattern: `a(?=b)`, input: "ac", want: false},
	{pattern: `a(?!b)`, input: "ac", want: true},
	{pattern: `(?<=\$)\d+`, input: "$100", want: true},
	{pattern: `(?<year>\d{4})`, input: "2024", want: true},
	{pattern: `colou?r`, input: "color", want: true},
	{pattern: `x{2,4}`, input: "xxx", want: true},
	{pattern: `^(?:ab)*$`, input: "ababab", want: true},
}

func TestConformanceAgreesWithRegexp2(t *testing.T) {
	for _, tc := range conformanceCorpus {
		t.Run(tc.pattern, func(t *testing.T) {
			if _, sink := Parse(tc.pattern, tc.flags); sink.HasErrors() {
				t.Fatalf("this module's parser rejected %q: %v", tc.pattern, sink.All())
			}

			re, err := regexp2.Compile(tc.pattern, regexp2.ECMAScript|tc.reOpts)
			if err != nil {
				t.Fatalf("regexp2 rejected %q as invalid ECMAScript syntax: %v", tc.pattern, err)
			}
			got, err := re.MatchString(tc.input)
			if err != nil {
				t.Fatalf("regexp2 match error on %q: %v", tc.pattern, err)
			}
			if got != tc.want {
				t.Errorf("regexp2 MatchString(%q, %q) = %v, want %v", tc.pattern, tc.input, got, tc.want)
			}
		})
	}
}

// TestConformanceRejectsInvalidBackreference checks the two engines
// agree on a pattern the corpus above deliberately never includes: one
// that is syntactically well-formed everywhere except a backreference
// to a group that doesn't exist, which this module's parser diagnoses
// and regexp2 rejects at compile time.
func TestConformanceRejectsInvalidBackreference(t *testing.T) {
	pattern := `(a)\2`
	if _, sink := Parse(pattern, Flags{}); !sink.HasErrors() {
		t.Fatalf("this module's parser accepted %q, want an out-of-range backreference diagnostic", pattern)
	}
	if _, err := regexp2.Compile(pattern, regexp2.ECMAScript); err == nil {
		t.Fatalf("regexp2 accepted %q, want it to also reject the dangling backreference", pattern)
	}
}
