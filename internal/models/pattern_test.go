package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calyptra/rexcraft/rex"
)

func TestFromSequence(t *testing.T) {
	t.Run("valid sequence", func(t *testing.T) {
		p := FromSequence(rex.New().Start().OneOrMore().Digit().End(), 0)

		assert.True(t, p.Valid)
		assert.Equal(t, `^\d+$`, p.Text)
		require.NotNil(t, p.Compiled)
		assert.Empty(t, p.Error)
	})

	t.Run("structural error", func(t *testing.T) {
		p := FromSequence(rex.New().Group().Digit(), 0)

		assert.False(t, p.Valid)
		assert.Nil(t, p.Compiled)
		assert.NotEmpty(t, p.Error)
	})

	t.Run("flags are applied", func(t *testing.T) {
		p := FromSequence(rex.New().Literal("abc"), rex.IgnoreCase)

		require.True(t, p.Valid)
		assert.True(t, p.Compiled.MatchString("ABC"))
	})
}

func TestTestSamples(t *testing.T) {
	p := FromSequence(rex.New().Start().OneOrMore().Digit().End(), 0)

	results := p.TestSamples([]string{"123", "12a", "", "007"})

	assert.Equal(t, 2, p.MatchCount)
	require.Len(t, results, 4)
	assert.True(t, results[0].Matched)
	assert.False(t, results[1].Matched)
	assert.False(t, results[2].Matched)
	assert.True(t, results[3].Matched)

	t.Run("invalid pattern matches nothing", func(t *testing.T) {
		bad := FromSequence(rex.New().Group(), 0)
		results := bad.TestSamples([]string{"anything"})
		assert.Equal(t, 0, bad.MatchCount)
		assert.False(t, results[0].Matched)
	})
}
