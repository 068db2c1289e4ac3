package regexp

import (
	"fmt"
	"sort"
	"strings"
)

// Display renders pattern back into ECMAScript regex source text. The
// output is a canonical, idempotent re-serialization: re-parsing
// Display(p) and displaying again yields the same string,
// even when the original source used alternative spellings for the same
// construct (e.g. a hex escape vs its control-character shorthand, or
// lowercase hex digits vs uppercase).
func Display(p *Pattern) string {
	var b strings.Builder
	displayAlternatives(&b, p.Alternatives)
	return b.String()
}

// DisplayWithFlags renders pattern as a full `/pattern/flags` literal.
func DisplayWithFlags(p *Pattern, flags Flags) string {
	return "/" + Display(p) + "/" + flags.String()
}

// String renders a Flags value in the canonical d g i m s u v y order,
// matching the order V8 and SpiderMonkey both normalize to.
func (f Flags) String() string {
	var b strings.Builder
	if f.HasIndices {
		b.WriteByte('d')
	}
	if f.Global {
		b.WriteByte('g')
	}
	if f.IgnoreCase {
		b.WriteByte('i')
	}
	if f.Multiline {
		b.WriteByte('m')
	}
	if f.DotAll {
		b.WriteByte('s')
	}
	if f.Unicode {
		b.WriteByte('u')
	}
	if f.UnicodeSets {
		b.WriteByte('v')
	}
	if f.Sticky {
		b.WriteByte('y')
	}
	return b.String()
}

func displayAlternatives(b *strings.Builder, alts []*Alternative) {
	for i, alt := range alts {
		if i > 0 {
			b.WriteByte('|')
		}
		for _, t := range alt.Terms {
			displayNode(b, t)
		}
	}
}

func displayNode(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Character:
		displayCharacter(b, v.CodePoint)
	case *AnyCharacter:
		b.WriteByte('.')
	case *CharacterClassEscape:
		b.WriteByte('\\')
		b.WriteByte(v.Kind)
	case *UnicodePropertyEscape:
		displayUnicodePropertyEscape(b, v)
	case *Backreference:
		if v.Name != "" {
			fmt.Fprintf(b, "\\k<%s>", v.Name)
		} else {
			fmt.Fprintf(b, "\\%d", v.Index)
		}
	case *Assertion:
		displayAssertion(b, v)
	case *Quantifier:
		displayNode(b, v.Term)
		displayQuantifierSuffix(b, v)
	case *Group:
		b.WriteByte('(')
		if !v.Capturing {
			b.WriteString("?:")
		} else if v.Name != "" {
			fmt.Fprintf(b, "?<%s>", v.Name)
		}
		displayAlternatives(b, v.Alternatives)
		b.WriteByte(')')
	case *CharacterClass:
		displayCharacterClass(b, v)
	}
}

func displayCharacter(b *strings.Builder, r rune) {
	switch r {
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	case '\f':
		b.WriteString(`\f`)
	case '\v':
		b.WriteString(`\v`)
	case '.', '*', '+', '?', '(', ')', '[', ']', '{', '}', '|', '^', '$', '\\', '/':
		b.WriteByte('\\')
		b.WriteRune(r)
	default:
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(b, "\\x%02X", r)
			return
		}
		b.WriteRune(r)
	}
}

func displayUnicodePropertyEscape(b *strings.Builder, e *UnicodePropertyEscape) {
	if e.Negated {
		b.WriteString(`\P{`)
	} else {
		b.WriteString(`\p{`)
	}
	b.WriteString(e.Property)
	if e.Value != "" {
		b.WriteByte('=')
		b.WriteString(e.Value)
	}
	b.WriteByte('}')
}

func displayAssertion(b *strings.Builder, a *Assertion) {
	switch a.Kind {
	case AssertStart:
		b.WriteByte('^')
	case AssertEnd:
		b.WriteByte('$')
	case AssertWordBoundary:
		b.WriteString(`\b`)
	case AssertNotWordBoundary:
		b.WriteString(`\B`)
	case AssertLookahead:
		b.WriteString("(?=")
		displayAlternatives(b, a.Alternatives)
		b.WriteByte(')')
	case AssertNegativeLookahead:
		b.WriteString("(?!")
		displayAlternatives(b, a.Alternatives)
		b.WriteByte(')')
	case AssertLookbehind:
		b.WriteString("(?<=")
		displayAlternatives(b, a.Alternatives)
		b.WriteByte(')')
	case AssertNegativeLookbehind:
		b.WriteString("(?<!")
		displayAlternatives(b, a.Alternatives)
		b.WriteByte(')')
	}
}

func displayQuantifierSuffix(b *strings.Builder, q *Quantifier) {
	switch {
	case q.Min == 0 && q.Max == -1:
		b.WriteByte('*')
	case q.Min == 1 && q.Max == -1:
		b.WriteByte('+')
	case q.Min == 0 && q.Max == 1:
		b.WriteByte('?')
	case q.Max == -1:
		fmt.Fprintf(b, "{%d,}", q.Min)
	case q.Min == q.Max:
		fmt.Fprintf(b, "{%d}", q.Min)
	default:
		fmt.Fprintf(b, "{%d,%d}", q.Min, q.Max)
	}
	if !q.Greedy {
		b.WriteByte('?')
	}
}

func displayCharacterClass(b *strings.Builder, c *CharacterClass) {
	if len(c.Operands) > 0 {
		op := "&&"
		if c.Operator == ClassSubtraction {
			op = "--"
		}
		for i, operand := range c.Operands {
			if i > 0 {
				b.WriteString(op)
			}
			displayCharacterClass(b, operand)
		}
		return
	}

	b.WriteByte('[')
	if c.Negated {
		b.WriteByte('^')
	}
	for _, e := range c.Escapes {
		b.WriteByte('\\')
		b.WriteByte(e.Kind)
	}
	for _, p := range c.Properties {
		displayUnicodePropertyEscape(b, p)
	}
	// Ranges and lone characters are sorted by starting code point so
	// that semantically identical classes serialize identically
	// regardless of source order.
	ranges := append([]ClassRange(nil), c.Ranges...)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].From < ranges[j].From })
	for _, r := range ranges {
		displayClassCharacter(b, r.From)
		b.WriteByte('-')
		displayClassCharacter(b, r.To)
	}
	chars := append([]rune(nil), c.Characters...)
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	for _, ch := range chars {
		displayClassCharacter(b, ch)
	}
	b.WriteByte(']')
}

func displayClassCharacter(b *strings.Builder, r rune) {
	switch r {
	case ']', '\\', '^', '-':
		b.WriteByte('\\')
		b.WriteRune(r)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	default:
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(b, "\\x%02X", r)
			return
		}
		b.WriteRune(r)
	}
}
