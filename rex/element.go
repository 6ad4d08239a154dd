package rex

import (
	"fmt"
	"strings"
)

// Element is one unit in an accumulated pattern sequence: either literal
// pattern text or a zero-width marker whose effect is resolved when the
// sequence is rendered. The set of kinds is closed.
type Element interface {
	element()
}

// Literal is raw pattern text, already escaped as needed by whoever built it.
type Literal string

func (Literal) element() {}

// Negation inverts the matching sense of the FOLLOWING character class, or
// the greediness of the FOLLOWING repeat marker. It is consumed at append
// time by negation-aware builder methods; one that survives to rendering
// emits nothing.
type Negation struct{}

func (Negation) element() {}

// GroupStart opens a capture group. The group is named when Name is
// non-empty. The group is closed by the next matching GroupEnd.
type GroupStart struct {
	Name string
}

func (GroupStart) element() {}

// marker returns the opening delimiter text for the group.
func (g GroupStart) marker() string {
	if g.Name != "" {
		return fmt.Sprintf("(?P<%s>", g.Name)
	}
	return "("
}

// GroupEnd closes the innermost open group.
type GroupEnd struct{}

func (GroupEnd) element() {}

func (GroupEnd) marker() string { return ")" }

// Repeat modifies the repeat count of the FOLLOWING element. It is an edge
// case because its text must be emitted after the element it modifies, while
// fluency puts it first in the chain, e.g. OneOrMore().Digit(). Max may be
// -1 to mean any number of repeats.
type Repeat struct {
	Min    int
	Max    int
	Greedy bool
}

func (Repeat) element() {}

// postfix returns the repeat suffix attached to the next rendered element.
func (p Repeat) postfix() string {
	suffix := ""
	if !p.Greedy {
		suffix = "?"
	}
	if p.Min == 0 {
		if p.Max < 0 {
			return "*" + suffix
		}
		if p.Max == 1 {
			return "?" + suffix
		}
	} else if p.Min == 1 && p.Max < 0 {
		return "+" + suffix
	}
	return fmt.Sprintf("{%d,%d}%s", p.Min, p.Max, suffix)
}

// resolve returns the in-place text of an element. Repeat never resolves in
// place, and Negation has no text of its own.
func resolve(e Element) string {
	switch v := e.(type) {
	case Literal:
		return string(v)
	case GroupStart:
		return v.marker()
	case GroupEnd:
		return v.marker()
	default:
		return ""
	}
}

// Metacharacters is the set of characters Escape prefixes with a backslash.
const Metacharacters = `.^$*+?{}[]\|()-`

// Escape returns s with every metacharacter preceded by a backslash; all
// other characters pass through unchanged. Strings built with Literal or
// AnyOf never need to be pre-escaped by the caller.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		if strings.ContainsRune(Metacharacters, c) {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// class is a character-class token with a normal and an inverted written
// form. Which form gets appended is decided by the builder when it looks
// behind for a Negation, so the same pair serves every sequence.
type class struct {
	normal  string
	negated string
}

var (
	classDigit        = class{`\d`, `\D`}
	classWhitespace   = class{`\s`, `\S`}
	classWord         = class{`\w`, `\W`}
	classAlpha        = class{`[a-zA-Z]`, `[^a-zA-Z]`}
	classWordBoundary = class{`\b`, `\B`}
	classAnything     = class{`.*`, `.*?`}
)
