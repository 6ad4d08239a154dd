// Package rex builds regular-expression pattern strings through a fluent
// chain of semantic operations instead of hand-written pattern syntax:
//
//	pattern, err := rex.New().
//		Start().
//		NamedGroup("area").Exactly(3).Digit().EndGroup().
//		Literal("-").
//		Exactly(4).Digit().
//		End().
//		AsString()
//
// Every call returns a new independent sequence; nothing is ever mutated in
// place, so a partially built sequence can be shared and extended along
// several branches at once.
package rex

import (
	"fmt"
	"reflect"
	"strings"
)

// RE is an immutable ordered sequence of pattern elements. The zero value is
// the empty sequence. Fluent methods return extended copies; rendering with
// AsString or Compile happens on demand and never changes the receiver.
type RE struct {
	elements []Element
	err      error // deferred error from a chain call that cannot return one
}

// New returns an empty sequence to start a fluent chain from.
func New() RE {
	return RE{}
}

// Elements returns a copy of the accumulated element list.
func (r RE) Elements() []Element {
	out := make([]Element, len(r.elements))
	copy(out, r.elements)
	return out
}

// push returns a copy of r with elems appended. The element slice is always
// reallocated so sequences forked from a common prefix never share a
// writable backing array.
func (r RE) push(elems ...Element) RE {
	out := make([]Element, len(r.elements), len(r.elements)+len(elems))
	copy(out, r.elements)
	return RE{elements: append(out, elems...), err: r.err}
}

// replaceLast returns a copy of r with the trailing element swapped for e.
func (r RE) replaceLast(e Element) RE {
	out := make([]Element, len(r.elements))
	copy(out, r.elements)
	out[len(out)-1] = e
	return RE{elements: out, err: r.err}
}

// endsWithNot reports whether the last accumulated element is a Negation.
func (r RE) endsWithNot() bool {
	if len(r.elements) == 0 {
		return false
	}
	_, ok := r.elements[len(r.elements)-1].(Negation)
	return ok
}

// Add appends arbitrary units to the sequence: strings are appended as raw
// pattern text, Elements as themselves, RE values are spliced in element by
// element, and slices or arrays of any of these are flattened recursively in
// order. A unit of any other kind is silently ignored.
func (r RE) Add(units ...any) RE {
	out := RE{elements: r.Elements(), err: r.err}
	for _, u := range units {
		out = out.addUnit(u)
	}
	return out
}

func (r RE) addUnit(u any) RE {
	switch v := u.(type) {
	case nil:
		return r
	case string:
		r.elements = append(r.elements, Literal(v))
		return r
	case Element:
		r.elements = append(r.elements, v)
		return r
	case RE:
		r.elements = append(r.elements, v.elements...)
		if r.err == nil {
			r.err = v.err
		}
		return r
	}
	rv := reflect.ValueOf(u)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			r = r.addUnit(rv.Index(i).Interface())
		}
	}
	return r
}

// charClass appends the normal form of c, unless the sequence currently
// ends with a Negation, in which case the Negation is consumed and the
// inverted form is appended instead.
func (r RE) charClass(c class) RE {
	if r.endsWithNot() {
		return r.replaceLast(Literal(c.negated))
	}
	return r.push(Literal(c.normal))
}

// repeat appends a Repeat marker. A trailing Negation is consumed and flips
// the marker to non-greedy.
func (r RE) repeat(min, max int) RE {
	if r.endsWithNot() {
		return r.replaceLast(Repeat{Min: min, Max: max, Greedy: false})
	}
	return r.push(Repeat{Min: min, Max: max, Greedy: true})
}

// repeatCounted appends a Repeat marker for the counted forms, which
// greediness does not apply to. A preceding Negation is left alone and
// renders as nothing.
func (r RE) repeatCounted(min, max int) RE {
	return r.push(Repeat{Min: min, Max: max, Greedy: true})
}

// Anchors.

// Start appends the start-of-input anchor ^.
func (r RE) Start() RE { return r.push(Literal("^")) }

// End appends the end-of-input anchor $.
func (r RE) End() RE { return r.push(Literal("$")) }

// Text.

// Literal appends the string s with every metacharacter escaped, so the
// pattern matches s exactly as given.
func (r RE) Literal(s string) RE { return r.push(Literal(Escape(s))) }

// Regex appends s without any escaping, so embedded pattern syntax such as
// [a-z] keeps its meaning.
func (r RE) Regex(s string) RE { return r.push(Literal(s)) }

// Character classes. Each of these is inverted when the preceding element is
// a Negation, which is consumed in the process.

// Digit matches a decimal digit.
func (r RE) Digit() RE { return r.charClass(classDigit) }

// Digits is a synonym for Digit.
func (r RE) Digits() RE { return r.Digit() }

// Whitespace matches a whitespace character.
func (r RE) Whitespace() RE { return r.charClass(classWhitespace) }

// Alphanumeric matches any of a-z, A-Z, 0-9 or underscore.
func (r RE) Alphanumeric() RE { return r.charClass(classWord) }

// Alphanumerics is a synonym for Alphanumeric.
func (r RE) Alphanumerics() RE { return r.Alphanumeric() }

// Alpha matches any of a-z or A-Z.
func (r RE) Alpha() RE { return r.charClass(classAlpha) }

// AToZ is a synonym for Alpha.
func (r RE) AToZ() RE { return r.Alpha() }

// WordBoundary matches the zero-width boundary between word and non-word
// characters.
func (r RE) WordBoundary() RE { return r.charClass(classWordBoundary) }

// Identifier matches an alpha or underscore followed by any number of
// alphanumerics or underscores.
func (r RE) Identifier() RE { return r.push(Literal(`[a-zA-Z_][\w_]*`)) }

// AnyOf matches any one of the characters in s, each treated as a literal
// and escaped. To use real pattern syntax inside a set, use Regex instead.
func (r RE) AnyOf(s string) RE {
	set := Escape(s)
	if r.endsWithNot() {
		return r.replaceLast(Literal("[^" + set + "]"))
	}
	return r.push(Literal("[" + set + "]"))
}

// AnyChar matches any single character.
func (r RE) AnyChar() RE { return r.push(Literal(".")) }

// Anything matches any run of characters, greedily; a preceding Negation
// makes it non-greedy.
func (r RE) Anything() RE { return r.charClass(classAnything) }

// Dot matches a literal dot.
func (r RE) Dot() RE { return r.push(Literal(`\.`)) }

// Underscore matches a literal underscore.
func (r RE) Underscore() RE { return r.push(Literal("_")) }

// Dash matches a literal dash.
func (r RE) Dash() RE { return r.push(Literal(`\-`)) }

// Newline matches a newline character.
func (r RE) Newline() RE { return r.push(Literal(`\n`)) }

// Tab matches a tab character.
func (r RE) Tab() RE { return r.push(Literal(`\t`)) }

// Repeat markers. Each applies to the FOLLOWING element. ZeroOrMore,
// OneOrMore and ZeroOrOne become non-greedy when preceded by a Negation;
// the counted forms are unaffected by greediness.

// ZeroOrMore makes the following element match when repeated zero or more
// times.
func (r RE) ZeroOrMore() RE { return r.repeat(0, -1) }

// AnyNumberOf is a synonym for ZeroOrMore.
func (r RE) AnyNumberOf() RE { return r.ZeroOrMore() }

// OneOrMore makes the following element match when repeated one or more
// times.
func (r RE) OneOrMore() RE { return r.repeat(1, -1) }

// AtLeastOne is a synonym for OneOrMore.
func (r RE) AtLeastOne() RE { return r.OneOrMore() }

// ZeroOrOne makes the following element optional.
func (r RE) ZeroOrOne() RE { return r.repeat(0, 1) }

// Optional is a synonym for ZeroOrOne.
func (r RE) Optional() RE { return r.ZeroOrOne() }

// ZeroOrOnce is a synonym for ZeroOrOne.
func (r RE) ZeroOrOnce() RE { return r.ZeroOrOne() }

// AnOptional is a synonym for ZeroOrOne.
func (r RE) AnOptional() RE { return r.ZeroOrOne() }

// Exactly makes the following element match when repeated exactly n times.
func (r RE) Exactly(n int) RE { return r.repeatCounted(n, n) }

// One is a synonym for Exactly(1).
func (r RE) One() RE { return r.Exactly(1) }

// UpTo makes the following element match when repeated up to n times.
func (r RE) UpTo(n int) RE { return r.repeatCounted(0, n) }

// Between makes the following element match when repeated at least n and at
// most m times. The bounds are normalized, so the arguments may be given in
// either order.
func (r RE) Between(n, m int) RE {
	if n > m {
		n, m = m, n
	}
	return r.repeatCounted(n, m)
}

// Negation.

// Not appends a Negation that inverts the next character class, or makes
// the next repeat marker non-greedy.
func (r RE) Not() RE { return r.push(Negation{}) }

// NotA is a synonym for Not.
func (r RE) NotA() RE { return r.Not() }

// NotAn is a synonym for Not.
func (r RE) NotAn() RE { return r.Not() }

// NonGreedy is a synonym for Not, reading better before a repeat marker.
func (r RE) NonGreedy() RE { return r.Not() }

// Groups.

// Group opens an un-named capture group around the following elements. It
// must be closed with EndGroup.
func (r RE) Group() RE { return r.push(GroupStart{}) }

// StartGroup is a synonym for Group.
func (r RE) StartGroup() RE { return r.Group() }

// NamedGroup opens a capture group named name. An empty name gives an
// un-named group.
func (r RE) NamedGroup(name string) RE { return r.push(GroupStart{Name: name}) }

// StartNamedGroup is a synonym for NamedGroup.
func (r RE) StartNamedGroup(name string) RE { return r.NamedGroup(name) }

// EndGroup closes the innermost open group.
func (r RE) EndGroup() RE { return r.push(GroupEnd{}) }

// AnyRE appends an alternation matching any one of args. RE arguments are
// rendered, strings are taken as raw pattern text, and anything else is
// formatted with fmt. A rendering failure in an argument is carried by the
// returned sequence and reported by AsString or Compile.
func (r RE) AnyRE(args ...any) RE {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		switch v := a.(type) {
		case RE:
			s, err := v.AsString()
			if err != nil {
				out := RE{elements: r.Elements(), err: r.err}
				if out.err == nil {
					out.err = err
				}
				return out
			}
			parts = append(parts, s)
		case string:
			parts = append(parts, v)
		default:
			parts = append(parts, fmt.Sprint(v))
		}
	}
	return r.push(Literal(strings.Join(parts, "|")))
}

// Chain punctuation. With no arguments these return the receiver unchanged
// and exist purely to make chains read as sentences; with arguments they
// behave like Add.

// Then is cosmetic with no arguments, Add otherwise.
func (r RE) Then(units ...any) RE {
	if len(units) == 0 {
		return r
	}
	return r.Add(units...)
}

// FollowedBy is cosmetic with no arguments, Add otherwise.
func (r RE) FollowedBy(units ...any) RE { return r.Then(units...) }

// Of is cosmetic with no arguments, Add otherwise.
func (r RE) Of(units ...any) RE { return r.Then(units...) }

// OfA is cosmetic with no arguments, Add otherwise.
func (r RE) OfA(units ...any) RE { return r.Then(units...) }

// OfAn is cosmetic with no arguments, Add otherwise.
func (r RE) OfAn(units ...any) RE { return r.Then(units...) }
