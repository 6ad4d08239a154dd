// Package recipe turns line-oriented builder scripts into rex sequences.
// A recipe holds one fluent operation per line, in call order:
//
//	# decimal number
//	start
//	any-number-of
//	digit
//	literal .
//	at-least-one
//	digit
//	end
//
// Blank lines and lines starting with # are ignored.
package recipe

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/calyptra/rexcraft/rex"
	"github.com/spf13/afero"
)

// opFunc applies one named operation to a sequence. args holds the
// whitespace-split tail of the line; for text-taking operations it is the
// raw remainder instead, so literals may contain spaces.
type opFunc func(re rex.RE, args []string, raw string) (rex.RE, error)

// ops maps every operation name, including the synonym set, to its
// implementation.
var ops = map[string]opFunc{
	"start": nullary(rex.RE.Start),
	"end":   nullary(rex.RE.End),

	"literal": text(rex.RE.Literal),
	"regex":   text(rex.RE.Regex),
	"any-of":  text(rex.RE.AnyOf),

	"digit":         nullary(rex.RE.Digit),
	"digits":        nullary(rex.RE.Digit),
	"whitespace":    nullary(rex.RE.Whitespace),
	"alphanumeric":  nullary(rex.RE.Alphanumeric),
	"alphanumerics": nullary(rex.RE.Alphanumeric),
	"alpha":         nullary(rex.RE.Alpha),
	"word-boundary": nullary(rex.RE.WordBoundary),
	"identifier":    nullary(rex.RE.Identifier),
	"any-char":      nullary(rex.RE.AnyChar),
	"anything":      nullary(rex.RE.Anything),
	"dot":           nullary(rex.RE.Dot),
	"underscore":    nullary(rex.RE.Underscore),
	"dash":          nullary(rex.RE.Dash),
	"newline":       nullary(rex.RE.Newline),
	"tab":           nullary(rex.RE.Tab),

	"zero-or-more":  nullary(rex.RE.ZeroOrMore),
	"any-number-of": nullary(rex.RE.ZeroOrMore),
	"one-or-more":   nullary(rex.RE.OneOrMore),
	"at-least-one":  nullary(rex.RE.OneOrMore),
	"zero-or-one":   nullary(rex.RE.ZeroOrOne),
	"zero-or-once":  nullary(rex.RE.ZeroOrOne),
	"optional":      nullary(rex.RE.ZeroOrOne),
	"an-optional":   nullary(rex.RE.ZeroOrOne),
	"one":           nullary(rex.RE.One),
	"exactly":       count1(rex.RE.Exactly),
	"up-to":         count1(rex.RE.UpTo),
	"between":       count2(rex.RE.Between),

	"not":        nullary(rex.RE.Not),
	"not-a":      nullary(rex.RE.Not),
	"not-an":     nullary(rex.RE.Not),
	"non-greedy": nullary(rex.RE.Not),

	"group":       nullary(rex.RE.Group),
	"start-group": nullary(rex.RE.Group),
	"named-group": func(re rex.RE, args []string, raw string) (rex.RE, error) {
		if len(args) != 1 {
			return re, fmt.Errorf("named-group takes exactly one name, got %d arguments", len(args))
		}
		return re.NamedGroup(args[0]), nil
	},
	"end-group": nullary(rex.RE.EndGroup),

	"then":        nullary(chainNoop),
	"followed-by": nullary(chainNoop),
	"of":          nullary(chainNoop),
}

// chainNoop adapts the variadic punctuation methods to the nullary shape.
func chainNoop(re rex.RE) rex.RE { return re.Then() }

func nullary(f func(rex.RE) rex.RE) opFunc {
	return func(re rex.RE, args []string, raw string) (rex.RE, error) {
		if len(args) != 0 {
			return re, fmt.Errorf("operation takes no arguments, got %d", len(args))
		}
		return f(re), nil
	}
}

func text(f func(rex.RE, string) rex.RE) opFunc {
	return func(re rex.RE, args []string, raw string) (rex.RE, error) {
		if raw == "" {
			return re, fmt.Errorf("operation needs a text argument")
		}
		return f(re, raw), nil
	}
}

func count1(f func(rex.RE, int) rex.RE) opFunc {
	return func(re rex.RE, args []string, raw string) (rex.RE, error) {
		if len(args) != 1 {
			return re, fmt.Errorf("operation takes exactly one count, got %d arguments", len(args))
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return re, fmt.Errorf("invalid count %q: %w", args[0], err)
		}
		return f(re, n), nil
	}
}

func count2(f func(rex.RE, int, int) rex.RE) opFunc {
	return func(re rex.RE, args []string, raw string) (rex.RE, error) {
		if len(args) != 2 {
			return re, fmt.Errorf("operation takes exactly two counts, got %d arguments", len(args))
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return re, fmt.Errorf("invalid count %q: %w", args[0], err)
		}
		m, err := strconv.Atoi(args[1])
		if err != nil {
			return re, fmt.Errorf("invalid count %q: %w", args[1], err)
		}
		return f(re, n, m), nil
	}
}

// Apply applies a single recipe line to re. Blank lines and comments are
// no-ops.
func Apply(re rex.RE, line string) (rex.RE, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return re, nil
	}

	name, raw, _ := strings.Cut(line, " ")
	raw = strings.TrimSpace(raw)

	op, ok := ops[name]
	if !ok {
		return re, fmt.Errorf("unknown operation %q", name)
	}

	var args []string
	if raw != "" {
		args = strings.Fields(raw)
	}
	return op(re, args, raw)
}

// Build applies the given lines in order to an empty sequence. Errors name
// the offending line by its 1-based position.
func Build(lines []string) (rex.RE, error) {
	re := rex.New()
	for i, line := range lines {
		var err error
		re, err = Apply(re, line)
		if err != nil {
			return rex.New(), fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return re, nil
}

// OpNames returns every recognized operation name, sorted, for help output
// and completion.
func OpNames() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parser loads recipe files through a filesystem interface so callers and
// tests can supply in-memory filesystems.
type Parser struct {
	fs afero.Fs
}

// NewParser creates a Parser reading from the given filesystem.
func NewParser(fs afero.Fs) *Parser {
	return &Parser{fs: fs}
}

// Parse reads a recipe from r and builds the sequence it describes.
func (p *Parser) Parse(r io.Reader) (rex.RE, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return rex.New(), fmt.Errorf("failed to read recipe: %w", err)
	}
	return Build(lines)
}

// LoadFile reads and builds the recipe at path.
func (p *Parser) LoadFile(path string) (rex.RE, error) {
	f, err := p.fs.Open(path)
	if err != nil {
		return rex.New(), fmt.Errorf("failed to open recipe: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

// LoadLines reads the recipe at path and returns its raw lines, for editors
// that want to show and re-apply them one at a time.
func (p *Parser) LoadLines(path string) ([]string, error) {
	f, err := p.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipe: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipe: %w", err)
	}
	return lines, nil
}
