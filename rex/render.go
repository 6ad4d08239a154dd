package rex

import "strings"

// FormatError reports a structurally invalid sequence: a trailing element
// that needs a successor, or group delimiters that do not pair up. It is the
// only error rendering produces.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string { return e.Message }

func formatError(msg string) error {
	return &FormatError{Message: msg}
}

// validate checks the structural invariants that must hold before any text
// is produced. Group pairing is verified with a running depth count, which
// also covers crossed delimiters that a first/last-index comparison would
// let through.
func (r RE) validate() error {
	switch r.elements[len(r.elements)-1].(type) {
	case Negation:
		return formatError("the expression cannot end with a negation")
	case GroupStart:
		return formatError("the expression cannot end with an open group")
	}

	depth := 0
	for _, e := range r.elements {
		switch e.(type) {
		case GroupStart:
			depth++
		case GroupEnd:
			depth--
			if depth < 0 {
				return formatError("a group is closed before any group is open")
			}
		}
	}
	if depth != 0 {
		return formatError("the expression contains unmatched group delimiters")
	}
	return nil
}

// fragment is one entry in the rendering buffer: resolved text, or a Repeat
// still waiting for the element it modifies.
type fragment struct {
	text    string
	pending *Repeat
}

// AsString renders the sequence into its final pattern string. An empty
// sequence renders as "". Rendering is pure: it may be repeated any number
// of times with identical results, and never changes the receiver.
//
// The reduction resolves the prefix-call/postfix-output inversion of Repeat
// markers: a Repeat is held pending until the next element that produces
// non-empty text, whose output it follows immediately. Elements that render
// as nothing are transparent and do not consume a pending marker; a marker
// never followed by non-empty text is silently dropped.
func (r RE) AsString() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if len(r.elements) == 0 {
		return "", nil
	}
	if err := r.validate(); err != nil {
		return "", err
	}

	var buf []fragment
	for _, e := range r.elements {
		if rep, ok := e.(Repeat); ok {
			buf = append(buf, fragment{pending: &rep})
			continue
		}
		s := resolve(e)
		if s == "" {
			continue
		}
		if n := len(buf); n > 0 && buf[n-1].pending != nil {
			post := buf[n-1].pending.postfix()
			buf[n-1] = fragment{text: s}
			buf = append(buf, fragment{text: post})
			continue
		}
		buf = append(buf, fragment{text: s})
	}

	var b strings.Builder
	for _, f := range buf {
		if f.pending == nil {
			b.WriteString(f.text)
		}
	}
	return b.String(), nil
}

// MustString is like AsString but panics on a FormatError, for use in
// variable initializers and tests.
func (r RE) MustString() string {
	s, err := r.AsString()
	if err != nil {
		panic(err)
	}
	return s
}
