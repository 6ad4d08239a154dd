package models

import (
	"regexp"

	"github.com/calyptra/rexcraft/rex"
)

// Pattern represents a rendered pattern with its compile status
type Pattern struct {
	Text       string         // The rendered pattern text
	Compiled   *regexp.Regexp // Compiled regex (nil if invalid)
	Valid      bool           // Whether the pattern rendered and compiled
	MatchCount int            // Number of samples matching this pattern
	Error      string         // Error message if invalid
}

// SampleResult is the verdict for one sample string tested against a pattern
type SampleResult struct {
	Text    string // The sample text
	Matched bool   // Whether the pattern matched it
}

// FromSequence renders and compiles a built sequence into a Pattern.
// Rendering or compile failures produce an invalid Pattern carrying the
// error text rather than an error return, so callers can display it.
func FromSequence(re rex.RE, flags rex.Flags) Pattern {
	text, err := re.AsString()
	if err != nil {
		return Pattern{Text: "", Valid: false, Error: err.Error()}
	}

	compiled, err := re.Compile(flags)
	if err != nil {
		return Pattern{Text: text, Valid: false, Error: err.Error()}
	}

	return Pattern{
		Text:     text,
		Compiled: compiled,
		Valid:    true,
	}
}

// TestSamples matches every sample against the pattern and updates
// MatchCount. An invalid pattern matches nothing.
func (p *Pattern) TestSamples(samples []string) []SampleResult {
	results := make([]SampleResult, 0, len(samples))
	count := 0
	for _, s := range samples {
		matched := p.Valid && p.Compiled != nil && p.Compiled.MatchString(s)
		if matched {
			count++
		}
		results = append(results, SampleResult{Text: s, Matched: matched})
	}
	p.MatchCount = count
	return results
}
