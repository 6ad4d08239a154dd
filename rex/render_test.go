package rex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatErrors(t *testing.T) {
	testCases := []struct {
		name string
		re   RE
	}{
		{"trailing negation", New().Digit().Not()},
		{"trailing open group", New().Digit().Group()},
		{"trailing named open group", New().NamedGroup("x")},
		{"close before open", New().EndGroup().Group().Digit().EndGroup()},
		{"extra close", New().Group().AtLeastOne().Digit().EndGroup().EndGroup()},
		{"unclosed group", New().Group().Digit()},
		{"crossed delimiters", New().Group().EndGroup().EndGroup().Group().Group().EndGroup()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.re.AsString()
			require.Error(t, err)

			var fe *FormatError
			assert.True(t, errors.As(err, &fe), "expected a FormatError, got %T", err)
			assert.NotEmpty(t, fe.Message)
		})
	}
}

func TestFormatErrorPrecedesOutput(t *testing.T) {
	re := New().Literal("abc").Group()
	s, err := re.AsString()
	assert.Error(t, err)
	assert.Empty(t, s, "no partial output on a format error")
}

func TestEmptySequenceRendersEmpty(t *testing.T) {
	s, err := New().AsString()
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestEscaping(t *testing.T) {
	t.Run("every metacharacter is escaped", func(t *testing.T) {
		for _, c := range Metacharacters {
			s, err := New().Literal(string(c)).AsString()
			require.NoError(t, err)
			assert.Equal(t, `\`+string(c), s)
		}
	})

	t.Run("other characters pass through", func(t *testing.T) {
		s, err := New().Literal("hello world_42").AsString()
		require.NoError(t, err)
		assert.Equal(t, "hello world_42", s)
	})

	t.Run("metacharacters inside a set", func(t *testing.T) {
		var expected string
		for _, c := range Metacharacters {
			expected += `\` + string(c)
		}
		s, err := New().AnyOf(Metacharacters).AsString()
		require.NoError(t, err)
		assert.Equal(t, "["+expected+"]", s)
	})

	t.Run("escaped literal survives the engine", func(t *testing.T) {
		text := "a.b*c(d)e-f"
		re, err := New().Start().Literal(text).End().Compile(0)
		require.NoError(t, err)
		assert.True(t, re.MatchString(text))
		assert.False(t, re.MatchString("aXbYc(d)e-f"))
	})
}

func TestPendingMarkerTransparency(t *testing.T) {
	t.Run("empty element does not consume a pending repeat", func(t *testing.T) {
		s, err := New().ZeroOrMore().Regex("").Digit().AsString()
		require.NoError(t, err)
		assert.Equal(t, `\d*`, s)
	})

	t.Run("stranded negation is transparent", func(t *testing.T) {
		s, err := New().ZeroOrMore().Add(Negation{}).Literal("a").AsString()
		require.NoError(t, err)
		assert.Equal(t, "a*", s)
	})

	t.Run("only the nearest pending repeat is consumed", func(t *testing.T) {
		// The earlier marker is left pending forever and dropped.
		s, err := New().ZeroOrMore().OneOrMore().Digit().AsString()
		require.NoError(t, err)
		assert.Equal(t, `\d+`, s)
	})

	t.Run("suffix comes after the text it modifies", func(t *testing.T) {
		s, err := New().ZeroOrMore().Literal("*").AsString()
		require.NoError(t, err)
		assert.Equal(t, `\**`, s)
	})
}

func TestAnyRE(t *testing.T) {
	t.Run("joins alternatives", func(t *testing.T) {
		re := New().AnyRE(New().Literal("cat"), "dog", New().Digit())
		assert.Equal(t, `cat|dog|\d`, re.MustString())
	})

	t.Run("compiled alternation matches", func(t *testing.T) {
		re, err := New().Start().AnyRE(New().Literal("cat"), "dog").End().Compile(0)
		require.NoError(t, err)
		assert.True(t, re.MatchString("cat"))
		assert.True(t, re.MatchString("dog"))
		assert.False(t, re.MatchString("cow"))
	})

	t.Run("invalid alternative defers its error", func(t *testing.T) {
		bad := New().Group().Digit() // unclosed group
		re := New().AnyRE(bad).Literal("tail")

		_, err := re.AsString()
		require.Error(t, err)
		var fe *FormatError
		assert.True(t, errors.As(err, &fe))
	})
}

func TestCompileFlags(t *testing.T) {
	t.Run("no flags adds no prefix", func(t *testing.T) {
		re, err := New().Literal("abc").Compile(0)
		require.NoError(t, err)
		assert.Equal(t, "abc", re.String())
	})

	t.Run("ignore case", func(t *testing.T) {
		re, err := New().Start().Literal("hello").End().Compile(IgnoreCase)
		require.NoError(t, err)
		assert.True(t, re.MatchString("HELLO"))
	})

	t.Run("combined flags", func(t *testing.T) {
		re, err := New().Start().Literal("a").AnyChar().Literal("b").End().Compile(IgnoreCase | DotAll)
		require.NoError(t, err)
		assert.Equal(t, "(?is)^a.b$", re.String())
		assert.True(t, re.MatchString("A\nB"))
	})

	t.Run("format error reaches the caller", func(t *testing.T) {
		_, err := New().Group().Compile(0)
		var fe *FormatError
		assert.True(t, errors.As(err, &fe))
	})
}

func TestMustHelpers(t *testing.T) {
	assert.Equal(t, `\d`, New().Digit().MustString())
	assert.NotNil(t, New().Digit().MustCompile(0))

	assert.Panics(t, func() { New().Group().MustString() })
	assert.Panics(t, func() { New().Group().MustCompile(0) })
}

func TestPhoneNumberExample(t *testing.T) {
	// Match a US/Canadian phone number.
	re, err := New().Start().
		Literal("(").FollowedBy().Exactly(3).Digits().Then().Literal(")").
		Then().One().Literal("-").Then().Exactly(3).Digits().
		Then().One().Dash().FollowedBy().Exactly(4).Digits().Then().End().
		Compile(0)
	require.NoError(t, err)

	assert.True(t, re.MatchString("(123)-456-7890"))
	assert.False(t, re.MatchString("123-456-7890"))
}

func TestDecimalExamples(t *testing.T) {
	testCases := []struct {
		name     string
		re       RE
		expected string
	}{
		{
			"decimal number",
			New().AnyNumberOf().Digits().Literal(".").AtLeastOne().Digit(),
			`\d*\.\d+`,
		},
		{
			"decimal number with punctuation chain",
			New().AnyNumberOf().Digits().FollowedBy().Dot().Then().AtLeastOne().Digit(),
			`\d*\.\d+`,
		},
		{
			"counted dot",
			New().AnyNumberOf().Digits().FollowedBy().One().Dot().Then().AtLeastOne().Digit(),
			`\d*\.{1,1}\d+`,
		},
		{
			"optional dot",
			New().AnyNumberOf().Digits().FollowedBy().Optional().Dot().Then().AtLeastOne().Digit(),
			`\d*\.?\d+`,
		},
		{
			"filename with extension group",
			New().UpTo(8).Alphanumerics().Dot().NamedGroup("ext").UpTo(3).Alphanumerics().EndGroup(),
			`\w{0,8}\.(?P<ext>\w{0,3})`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := tc.re.AsString()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, s)
		})
	}
}
