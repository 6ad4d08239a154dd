package rex

import (
	"regexp"
	"strings"
)

// Flags select matching modes for Compile. They cover the inline flags the
// Go regexp engine accepts and are rendered as a (?…) group prefixed to the
// pattern.
type Flags int

const (
	// IgnoreCase makes matching case-insensitive.
	IgnoreCase Flags = 1 << iota
	// Multiline lets ^ and $ also match at line boundaries.
	Multiline
	// DotAll lets . match newline as well.
	DotAll
	// Ungreedy swaps the meaning of greedy and non-greedy repeats.
	Ungreedy
)

// inline returns the (?…) group for f, or "" when no flags are set.
func (f Flags) inline() string {
	if f == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("(?")
	if f&IgnoreCase != 0 {
		b.WriteByte('i')
	}
	if f&Multiline != 0 {
		b.WriteByte('m')
	}
	if f&DotAll != 0 {
		b.WriteByte('s')
	}
	if f&Ungreedy != 0 {
		b.WriteByte('U')
	}
	b.WriteByte(')')
	return b.String()
}

// Compile renders the sequence and hands the pattern to the regexp engine,
// with the given flags applied to the whole expression.
func (r RE) Compile(flags Flags) (*regexp.Regexp, error) {
	s, err := r.AsString()
	if err != nil {
		return nil, err
	}
	return regexp.Compile(flags.inline() + s)
}

// MustCompile is like Compile but panics on error, mirroring
// regexp.MustCompile.
func (r RE) MustCompile(flags Flags) *regexp.Regexp {
	re, err := r.Compile(flags)
	if err != nil {
		panic(err)
	}
	return re
}
