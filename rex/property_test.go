//go:build property
// +build property

package rex

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genSequence builds a random fluent chain from a list of op codes so that
// properties range over structurally varied sequences. Groups are kept
// balanced so that the generated sequences are renderable.
func genSequence() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 9)).Map(func(ops []int) RE {
		re := New()
		depth := 0
		for _, op := range ops {
			switch op {
			case 0:
				re = re.Digit()
			case 1:
				re = re.Literal("ab")
			case 2:
				re = re.ZeroOrMore()
			case 3:
				re = re.Not()
			case 4:
				re = re.Alphanumeric()
			case 5:
				re = re.Group()
				depth++
			case 6:
				if depth > 0 {
					re = re.EndGroup()
					depth--
				}
			case 7:
				re = re.OneOrMore()
			case 8:
				re = re.Whitespace()
			case 9:
				re = re.AnyOf("xy.z")
			}
		}
		for depth > 0 {
			re = re.EndGroup()
			depth--
		}
		// A trailing negation is the one structure the generator may
		// still produce that cannot render.
		if re.endsWithNot() {
			re = re.Digit()
		}
		return re
	})
}

func TestRenderProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("rendering is idempotent", prop.ForAll(
		func(re RE) bool {
			first, err1 := re.AsString()
			second, err2 := re.AsString()
			return err1 == nil && err2 == nil && first == second
		},
		genSequence(),
	))

	properties.Property("appending never changes the parent", prop.ForAll(
		func(re RE, suffix string) bool {
			before, err := re.AsString()
			if err != nil {
				return false
			}
			_ = re.Literal(suffix).Digit()
			after, err := re.AsString()
			return err == nil && before == after
		},
		genSequence(),
		gen.AlphaString(),
	))

	properties.Property("fan-out branches stay independent", prop.ForAll(
		func(re RE) bool {
			left := re.Literal("L")
			right := re.Literal("R")
			l1, err1 := left.AsString()
			r1, err2 := right.AsString()
			l2, err3 := left.AsString()
			if err1 != nil || err2 != nil || err3 != nil {
				return false
			}
			return l1 == l2 && l1 != r1
		},
		genSequence(),
	))

	properties.TestingRun(t)
}

func TestEscapingProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("literals match themselves exactly", prop.ForAll(
		func(s string) bool {
			re, err := New().Start().Literal(s).End().Compile(0)
			if err != nil {
				return false
			}
			return re.MatchString(s)
		},
		gen.AnyString(),
	))

	properties.Property("repeat suffix follows its target", prop.ForAll(
		func(r rune) bool {
			s, err := New().ZeroOrMore().Literal(string(r)).AsString()
			if err != nil {
				return false
			}
			return s == Escape(string(r))+"*"
		},
		gen.Rune(),
	))

	properties.TestingRun(t)
}
