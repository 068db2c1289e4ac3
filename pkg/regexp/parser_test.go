package regexp

import "testing"

func mustParse(t *testing.T, pattern string, flags Flags) *Pattern {
	t.Helper()
	p, sink := Parse(pattern, flags)
	if sink.HasErrors() {
		t.Fatalf("Parse(%q) produced unexpected errors: %v", pattern, sink.All())
	}
	return p
}

func TestParseLiteralCharacters(t *testing.T) {
	p := mustParse(t, "abc", Flags{})
	if len(p.Alternatives) != 1 || len(p.Alternatives[0].Terms) != 3 {
		t.Fatalf("expected 1 alternative with 3 terms, got %#v", p)
	}
	for i, want := range []rune{'a', 'b', 'c'} {
		c, ok := p.Alternatives[0].Terms[i].(*Character)
		if !ok || c.CodePoint != want {
			t.Fatalf("term %d = %#v, want Character(%q)", i, p.Alternatives[0].Terms[i], want)
		}
	}
}

func TestParseDisjunction(t *testing.T) {
	p := mustParse(t, "a|bc|d", Flags{})
	if len(p.Alternatives) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(p.Alternatives))
	}
	if len(p.Alternatives[1].Terms) != 2 {
		t.Fatalf("expected 2 terms in second alternative, got %d", len(p.Alternatives[1].Terms))
	}
}

func TestParseQuantifiers(t *testing.T) {
	cases := []struct {
		pattern  string
		min, max int
		greedy   bool
	}{
		{"a*", 0, -1, true},
		{"a+", 1, -1, true},
		{"a?", 0, 1, true},
		{"a{2}", 2, 2, true},
		{"a{2,}", 2, -1, true},
		{"a{2,5}", 2, 5, true},
		{"a*?", 0, -1, false},
		{"a+?", 1, -1, false},
	}
	for _, c := range cases {
		p := mustParse(t, c.pattern, Flags{})
		q, ok := p.Alternatives[0].Terms[0].(*Quantifier)
		if !ok {
			t.Fatalf("%q: expected a Quantifier, got %#v", c.pattern, p.Alternatives[0].Terms[0])
		}
		if q.Min != c.min || q.Max != c.max || q.Greedy != c.greedy {
			t.Fatalf("%q: got {%d,%d,%v}, want {%d,%d,%v}", c.pattern, q.Min, q.Max, q.Greedy, c.min, c.max, c.greedy)
		}
	}
}

func TestParseBraceWithoutDigitsIsLiteral(t *testing.T) {
	p := mustParse(t, "a{b", Flags{})
	if len(p.Alternatives[0].Terms) != 3 {
		t.Fatalf("expected 3 literal terms for 'a{b', got %#v", p.Alternatives[0].Terms)
	}
}

func TestParseCapturingGroups(t *testing.T) {
	p := mustParse(t, "(a)(b)", Flags{})
	g1, ok := p.Alternatives[0].Terms[0].(*Group)
	if !ok || !g1.Capturing || g1.Index != 1 {
		t.Fatalf("first group = %#v, want capturing index 1", g1)
	}
	g2, ok := p.Alternatives[0].Terms[1].(*Group)
	if !ok || !g2.Capturing || g2.Index != 2 {
		t.Fatalf("second group = %#v, want capturing index 2", g2)
	}
}

func TestParseNonCapturingGroup(t *testing.T) {
	p := mustParse(t, "(?:ab)", Flags{})
	g, ok := p.Alternatives[0].Terms[0].(*Group)
	if !ok || g.Capturing {
		t.Fatalf("expected non-capturing group, got %#v", g)
	}
}

func TestParseNamedCapturingGroup(t *testing.T) {
	p := mustParse(t, "(?<year>\\d{4})", Flags{})
	g, ok := p.Alternatives[0].Terms[0].(*Group)
	if !ok || !g.Capturing || g.Name != "year" || g.Index != 1 {
		t.Fatalf("named group = %#v, want Capturing Name=year Index=1", g)
	}
}

func TestParseLookarounds(t *testing.T) {
	cases := []struct {
		pattern string
		kind    AssertionKind
	}{
		{"(?=a)", AssertLookahead},
		{"(?!a)", AssertNegativeLookahead},
		{"(?<=a)", AssertLookbehind},
		{"(?<!a)", AssertNegativeLookbehind},
	}
	for _, c := range cases {
		p := mustParse(t, c.pattern, Flags{})
		a, ok := p.Alternatives[0].Terms[0].(*Assertion)
		if !ok || a.Kind != c.kind {
			t.Fatalf("%q: got %#v, want Assertion kind %v", c.pattern, p.Alternatives[0].Terms[0], c.kind)
		}
	}
}

func TestParseAnchorsAndWordBoundary(t *testing.T) {
	p := mustParse(t, "^\\bfoo\\B$", Flags{})
	terms := p.Alternatives[0].Terms
	if len(terms) != 7 {
		t.Fatalf("expected 7 terms (^, \\b, f, o, o, \\B, $), got %d: %#v", len(terms), terms)
	}
	start, ok := terms[0].(*Assertion)
	if !ok || start.Kind != AssertStart {
		t.Fatalf("first term = %#v, want ^", terms[0])
	}
	wb, ok := terms[1].(*Assertion)
	if !ok || wb.Kind != AssertWordBoundary {
		t.Fatalf("second term = %#v, want \\b", terms[1])
	}
	end, ok := terms[len(terms)-1].(*Assertion)
	if !ok || end.Kind != AssertEnd {
		t.Fatalf("last term = %#v, want $", terms[len(terms)-1])
	}
}

func TestParseCharacterClassEscapes(t *testing.T) {
	p := mustParse(t, "\\d\\D\\w\\W\\s\\S", Flags{})
	want := []byte{'d', 'D', 'w', 'W', 's', 'S'}
	for i, k := range want {
		e, ok := p.Alternatives[0].Terms[i].(*CharacterClassEscape)
		if !ok || e.Kind != k {
			t.Fatalf("term %d = %#v, want CharacterClassEscape(%q)", i, p.Alternatives[0].Terms[i], k)
		}
	}
}

func TestParseUnicodePropertyEscape(t *testing.T) {
	p := mustParse(t, "\\p{Script=Greek}\\P{Alphabetic}", Flags{Unicode: true})
	e1, ok := p.Alternatives[0].Terms[0].(*UnicodePropertyEscape)
	if !ok || e1.Negated || e1.Property != "Script" || e1.Value != "Greek" {
		t.Fatalf("first escape = %#v", e1)
	}
	e2, ok := p.Alternatives[0].Terms[1].(*UnicodePropertyEscape)
	if !ok || !e2.Negated || e2.Property != "Alphabetic" {
		t.Fatalf("second escape = %#v", e2)
	}
}

func TestParseUnrecognisedUnicodePropertyIsDiagnosed(t *testing.T) {
	_, sink := Parse("\\p{NotAProperty}", Flags{Unicode: true})
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic for an unrecognised property")
	}
	if sink.All()[0].Code != "R0303" {
		t.Fatalf("got code %s, want R0303", sink.All()[0].Code)
	}
}

func TestParseBackreferenceNumberedAndNamed(t *testing.T) {
	p := mustParse(t, "(a)(b)\\1\\k<x>", Flags{})
	// the \k<x> backreference references a group named "x" that doesn't
	// exist here; checkBackreferences only validates numbered refs, so
	// this is expected to parse without diagnostics at the syntax level.
	b1, ok := p.Alternatives[0].Terms[2].(*Backreference)
	if !ok || b1.Index != 1 {
		t.Fatalf("numbered backreference = %#v", b1)
	}
	b2, ok := p.Alternatives[0].Terms[3].(*Backreference)
	if !ok || b2.Name != "x" {
		t.Fatalf("named backreference = %#v", b2)
	}
}

func TestParseBackreferenceOutOfRangeIsDiagnosed(t *testing.T) {
	_, sink := Parse("(a)\\2", Flags{})
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic for an out-of-range backreference")
	}
	if sink.All()[0].Code != "R0305" {
		t.Fatalf("got code %s, want R0305", sink.All()[0].Code)
	}
}

func TestParseEscapesInsideGroup(t *testing.T) {
	p := mustParse(t, "(\\n\\t)", Flags{})
	g := p.Alternatives[0].Terms[0].(*Group)
	terms := g.Alternatives[0].Terms
	c1 := terms[0].(*Character)
	c2 := terms[1].(*Character)
	if c1.CodePoint != '\n' || c2.CodePoint != '\t' {
		t.Fatalf("got %q, %q", c1.CodePoint, c2.CodePoint)
	}
}

func TestParseHexAndUnicodeEscapes(t *testing.T) {
	p := mustParse(t, "\\x41\\u0042\\u{1F600}", Flags{Unicode: true})
	c1 := p.Alternatives[0].Terms[0].(*Character)
	c2 := p.Alternatives[0].Terms[1].(*Character)
	c3 := p.Alternatives[0].Terms[2].(*Character)
	if c1.CodePoint != 'A' || c2.CodePoint != 'B' || c3.CodePoint != 0x1F600 {
		t.Fatalf("got %q %q %q", c1.CodePoint, c2.CodePoint, c3.CodePoint)
	}
}

func TestParseTemplateLiteralModeToleratesInvalidEscapes(t *testing.T) {
	_, sink := ParseTemplateLiteralMode("\\9", Flags{})
	if sink.HasErrors() {
		t.Fatalf("template mode should not error on \\9, got %v", sink.All())
	}
}

func TestParseNonTemplateModeRejectsInvalidUnicodeEscape(t *testing.T) {
	_, sink := Parse("\\u{ZZZ}", Flags{Unicode: true})
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic for an invalid unicode escape outside template mode")
	}
}

func TestParseAnyCharacterAndDot(t *testing.T) {
	p := mustParse(t, ".", Flags{})
	if _, ok := p.Alternatives[0].Terms[0].(*AnyCharacter); !ok {
		t.Fatalf("expected AnyCharacter, got %#v", p.Alternatives[0].Terms[0])
	}
}

func TestParseCharacterClassRangesAndNegation(t *testing.T) {
	p := mustParse(t, "[^a-z0-9]", Flags{})
	c, ok := p.Alternatives[0].Terms[0].(*CharacterClass)
	if !ok || !c.Negated {
		t.Fatalf("expected a negated character class, got %#v", p.Alternatives[0].Terms[0])
	}
	if len(c.Ranges) != 2 {
		t.Fatalf("expected ranges a-z and 0-9, got %#v", c.Ranges)
	}
	if c.Ranges[0].From != 'a' || c.Ranges[0].To != 'z' || c.Ranges[1].From != '0' || c.Ranges[1].To != '9' {
		t.Fatalf("expected ranges {a,z} then {0,9} in source order, got %#v", c.Ranges)
	}
	if len(c.Characters) != 0 {
		t.Fatalf("expected no literal characters, got %#v", c.Characters)
	}
}

func TestParseCharacterClassEscapesAndProperties(t *testing.T) {
	p := mustParse(t, "[\\d\\p{Script=Greek}x]", Flags{Unicode: true})
	c := p.Alternatives[0].Terms[0].(*CharacterClass)
	if len(c.Escapes) != 1 || c.Escapes[0].Kind != 'd' {
		t.Fatalf("expected one \\d escape, got %#v", c.Escapes)
	}
	if len(c.Properties) != 1 || c.Properties[0].Property != "Script" || c.Properties[0].Value != "Greek" {
		t.Fatalf("expected one Script=Greek property, got %#v", c.Properties)
	}
	if len(c.Characters) != 1 || c.Characters[0] != 'x' {
		t.Fatalf("expected literal 'x', got %#v", c.Characters)
	}
}

func TestParseCharacterClassLeadingAndTrailingHyphenIsLiteral(t *testing.T) {
	p := mustParse(t, "[-a-]", Flags{})
	c := p.Alternatives[0].Terms[0].(*CharacterClass)
	if len(c.Ranges) != 0 {
		t.Fatalf("expected no ranges, got %#v", c.Ranges)
	}
	if len(c.Characters) != 3 {
		t.Fatalf("expected 3 literal characters (-, a, -), got %#v", c.Characters)
	}
}

func TestParseCharacterClassSetSubtractionUnicodeSets(t *testing.T) {
	p := mustParse(t, "[\\w--[aeiou]]", Flags{UnicodeSets: true})
	c := p.Alternatives[0].Terms[0].(*CharacterClass)
	if c.Operator != ClassSubtraction || len(c.Operands) != 2 {
		t.Fatalf("expected a subtraction of two operands, got %#v", c)
	}
	if len(c.Operands[0].Escapes) != 1 || c.Operands[0].Escapes[0].Kind != 'w' {
		t.Fatalf("expected left operand \\w, got %#v", c.Operands[0])
	}
	if len(c.Operands[1].Characters) != 5 {
		t.Fatalf("expected right operand with 5 literal vowels, got %#v", c.Operands[1].Characters)
	}
}

func TestDisplayRoundTripsSimplePattern(t *testing.T) {
	for _, src := range []string{"abc", "a|bc|d", "a*", "a+?", "(a)(?:b)(?<n>c)", "\\d\\w\\s", "^foo$", "[a-z0-9_]", "[^\\s]"} {
		p := mustParse(t, src, Flags{})
		out := Display(p)
		reparsed := mustParse(t, out, Flags{})
		again := Display(reparsed)
		if out != again {
			t.Fatalf("Display not idempotent for %q: first=%q second=%q", src, out, again)
		}
	}
}

func TestDisplayCanonicalizesHexEscapeCase(t *testing.T) {
	p := mustParse(t, "\\x0a", Flags{})
	out := Display(p)
	if out != `\n` {
		t.Fatalf("Display(\\x0a) = %q, want \\n (canonical control-char form)", out)
	}
	if got := Display(mustParse(t, "\\x1b", Flags{})); got != `\x1B` {
		t.Fatalf("Display(\\x1b) = %q, want \\x1B (upper-case hex digits)", got)
	}
}

func TestFlagsStringCanonicalOrder(t *testing.T) {
	f := Flags{Sticky: true, Global: true, Unicode: true, IgnoreCase: true}
	if got := f.String(); got != "giuy" {
		t.Fatalf("Flags.String() = %q, want %q", got, "giuy")
	}
}
